package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add stores a file from normalized bytes and returns a new FileID, even if
// the path was added before.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalizedPath := filepath.ToSlash(filepath.Clean(path))
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	flags := FileFlags(0)
	if trimmed, ok := bytes.CutPrefix(content, []byte("\xef\xbb\xbf")); ok {
		content = trimmed
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Len reports the number of files.
func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// Format renders pos as "path:line", or "path" when the line is unknown.
func (fileSet *FileSet) Format(pos Pos) string {
	f := fileSet.Get(pos.File)
	if f == nil {
		return pos.String()
	}
	if !pos.IsValid() {
		return f.Path
	}
	return f.Path + ":" + strconv.Itoa(pos.Line)
}

// Line returns the text of the 1-based line, without the newline. Out of
// range lines yield "".
func (f *File) Line(n int) string {
	if n <= 0 || n > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if n <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		idx = append(idx, off)
	}
	return idx
}
