// Package diag defines the diagnostics reported to users when a type check
// fails: a Code, a Severity, a message and the source.Pos it refers to.
//
// Checks emit through a Reporter so they do not depend on storage.
// BagReporter collects into a Bag, which sorts and limits output;
// DedupReporter drops repeats; SyncReporter lets concurrent checks share one
// sink. Rendering lives in internal/diagfmt.
//
// Defensive faults, such as a malformed range or an unresolved type
// parameter, are not diagnostics. They panic where they are detected.
package diag
