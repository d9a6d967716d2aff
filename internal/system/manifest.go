package system

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"cito/internal/intrinsic"
	"cito/internal/symbols"
)

// Current schema version - increment when the Manifest layout changes.
const manifestSchemaVersion uint16 = 1

// Manifest is a flat, serializable listing of the environment. Generators
// for other targets read it to learn the built-in signatures without linking
// this package; tests compare it to catch catalog drift.
type Manifest struct {
	Schema  uint16
	Types   []ManifestType
	Classes []ManifestClass
}

// ManifestType is a named scalar or enum.
type ManifestType struct {
	Name   string
	Kind   string
	Values []ManifestMember `msgpack:",omitempty"`
}

// ManifestClass describes one built-in class.
type ManifestClass struct {
	Name       string
	ID         string
	Call       string
	TypeParams int
	Base       string `msgpack:",omitempty"`
	Hidden     bool
	Members    []ManifestMember
}

// ManifestMember is a member, constant or method; a method group lists its
// overloads.
type ManifestMember struct {
	Name       string
	Kind       string
	ID         string           `msgpack:",omitempty"`
	Type       string           `msgpack:",omitempty"`
	Visibility string           `msgpack:",omitempty"`
	Call       string           `msgpack:",omitempty"`
	Mutator    bool             `msgpack:",omitempty"`
	Value      string           `msgpack:",omitempty"`
	Params     []ManifestParam  `msgpack:",omitempty"`
	Overloads  []ManifestMember `msgpack:",omitempty"`
}

// ManifestParam is one method parameter.
type ManifestParam struct {
	Name    string
	Type    string
	Default string `msgpack:",omitempty"`
}

// Manifest lists the environment in declaration order.
func (e *Env) Manifest() *Manifest {
	m := &Manifest{Schema: manifestSchemaVersion}
	t := e.Table
	for _, scope := range []symbols.ScopeID{e.Hidden, e.Scope} {
		for _, id := range t.Members(scope) {
			sym := t.Symbol(id)
			switch sym.Kind {
			case symbols.SymbolType:
				m.Types = append(m.Types, ManifestType{Name: sym.Name, Kind: sym.Type.Kind().String()})
			case symbols.SymbolEnum:
				mt := ManifestType{Name: sym.Name, Kind: sym.Type.Kind().String()}
				for _, v := range t.Members(sym.Body) {
					mt.Values = append(mt.Values, e.manifestMember(v))
				}
				m.Types = append(m.Types, mt)
			case symbols.SymbolClass:
				m.Classes = append(m.Classes, e.manifestClass(sym, scope == e.Hidden))
			}
		}
	}
	return m
}

func (e *Env) manifestClass(sym *symbols.Symbol, hidden bool) ManifestClass {
	c := sym.Class
	mc := ManifestClass{
		Name:       c.Name,
		ID:         c.ID.String(),
		Call:       c.Call.String(),
		TypeParams: c.TypeParams,
		Base:       c.BaseName,
		Hidden:     hidden,
	}
	for _, id := range e.Table.Members(sym.Body) {
		member := e.Table.Symbol(id)
		if member.Flags&symbols.SymbolFlagImplicit != 0 {
			continue
		}
		mc.Members = append(mc.Members, e.manifestMember(id))
	}
	return mc
}

func (e *Env) manifestMember(id symbols.SymbolID) ManifestMember {
	t := e.Table
	sym := t.Symbol(id)
	mm := ManifestMember{Name: sym.Name, Kind: sym.Kind.String()}
	if sym.ID != intrinsic.None {
		mm.ID = sym.ID.String()
	}
	switch sym.Kind {
	case symbols.SymbolMethodGroup:
		for _, o := range sym.Overloads {
			mm.Overloads = append(mm.Overloads, e.manifestMember(o))
		}
		return mm
	case symbols.SymbolMethod:
		mm.Visibility = sym.Visibility.String()
		mm.Call = sym.Call.String()
		mm.Mutator = sym.IsMutator()
		for _, p := range sym.Params {
			ps := t.Symbol(p)
			mp := ManifestParam{Name: ps.Name, Type: ps.Type.String()}
			if ps.Value.Kind != symbols.ValueNone {
				mp.Default = e.valueString(ps.Value)
			}
			mm.Params = append(mm.Params, mp)
		}
	case symbols.SymbolConst:
		mm.Value = e.valueString(sym.Value)
	}
	if sym.Type != nil {
		mm.Type = sym.Type.String()
	}
	return mm
}

func (e *Env) valueString(v symbols.Value) string {
	if v.Kind == symbols.ValueSymbol {
		if sym := e.Table.Symbol(v.Sym); sym != nil {
			return sym.Type.String() + "." + sym.Name
		}
	}
	return v.String()
}

// Encode writes m in msgpack form.
func (m *Manifest) Encode(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// DecodeManifest reads a manifest written by Encode.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Schema != manifestSchemaVersion {
		return nil, fmt.Errorf("manifest schema %d, want %d", m.Schema, manifestSchemaVersion)
	}
	return &m, nil
}

// Diff lists the classes and types whose listing differs between m and
// other, by name. An empty result means the manifests agree.
func (m *Manifest) Diff(other *Manifest) []string {
	var out []string
	classes := make(map[string]ManifestClass, len(other.Classes))
	for _, c := range other.Classes {
		classes[c.Name] = c
	}
	for _, c := range m.Classes {
		oc, ok := classes[c.Name]
		switch {
		case !ok:
			out = append(out, "-class "+c.Name)
		case !classEqual(c, oc):
			out = append(out, "~class "+c.Name)
		}
		delete(classes, c.Name)
	}
	for name := range classes {
		out = append(out, "+class "+name)
	}

	types := make(map[string]ManifestType, len(other.Types))
	for _, t := range other.Types {
		types[t.Name] = t
	}
	for _, t := range m.Types {
		ot, ok := types[t.Name]
		switch {
		case !ok:
			out = append(out, "-type "+t.Name)
		case ot.Kind != t.Kind || !slices.EqualFunc(ot.Values, t.Values, memberEqual):
			out = append(out, "~type "+t.Name)
		}
		delete(types, t.Name)
	}
	for name := range types {
		out = append(out, "+type "+name)
	}
	slices.SortFunc(out, func(a, b string) int { return strings.Compare(a[1:], b[1:]) })
	return out
}

func classEqual(a, b ManifestClass) bool {
	return a.ID == b.ID && a.Call == b.Call && a.TypeParams == b.TypeParams && a.Base == b.Base &&
		a.Hidden == b.Hidden && slices.EqualFunc(a.Members, b.Members, memberEqual)
}

func memberEqual(a, b ManifestMember) bool {
	return a.Name == b.Name && a.Kind == b.Kind && a.ID == b.ID && a.Type == b.Type &&
		a.Visibility == b.Visibility && a.Call == b.Call && a.Mutator == b.Mutator && a.Value == b.Value &&
		slices.Equal(a.Params, b.Params) && slices.EqualFunc(a.Overloads, b.Overloads, memberEqual)
}
