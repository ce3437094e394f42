package diag

import "unicode/utf16"

// ColumnEncoding selects how LineCol reports the column of a byte offset.
// Editors speaking the Language Server Protocol commonly want UTF-16 code
// unit columns; everything else in this compiler counts UTF-8 bytes.
type ColumnEncoding int

const (
	UTF8Columns ColumnEncoding = iota
	UTF16Columns
)

// LineCol is a 1-based line and a column in the requested encoding.
type LineCol struct {
	Line int
	Col  int
}

// Source is a single loaded IDL file: its stable identity (a path or URL),
// its bytes, and whether it came from a read-only (e.g. upstream
// repository) location.
type Source struct {
	ID       SourceID
	Name     string // stable identity: path or URL
	Content  []byte
	ReadOnly bool

	lineStarts []int // byte offset of the start of each line, computed by NewSource
}

// NewSource constructs a Source and precomputes its line index.
func NewSource(id SourceID, name string, content []byte, readOnly bool) *Source {
	s := &Source{ID: id, Name: name, Content: content, ReadOnly: readOnly}
	s.index()
	return s
}

func (s *Source) index() {
	s.lineStarts = []int{0}
	for i, b := range s.Content {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
}

// LineCol translates a byte offset into a (line, column) pair using the
// requested column encoding. Offsets past the end of the source clamp to
// the last valid position.
func (s *Source) LineCol(offset int, enc ColumnEncoding) LineCol {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Content) {
		offset = len(s.Content)
	}

	line := s.lineIndex(offset)
	lineStart := s.lineStarts[line]
	lineBytes := s.Content[lineStart:offset]

	col := 1
	switch enc {
	case UTF16Columns:
		col += len(utf16.Encode([]rune(string(lineBytes))))
	default:
		col += len(lineBytes)
	}

	return LineCol{Line: line + 1, Col: col}
}

func (s *Source) lineIndex(offset int) int {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Excerpt returns the raw text of the line containing offset, without its
// line terminator.
func (s *Source) Excerpt(offset int) string {
	line := s.lineIndex(min(offset, len(s.Content)))
	start := s.lineStarts[line]
	end := len(s.Content)
	if line+1 < len(s.lineStarts) {
		end = s.lineStarts[line+1]
	}
	text := s.Content[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return string(text)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Set is a registry of loaded sources, indexed by SourceID.
type Set struct {
	sources []*Source
}

// Add registers a source and assigns it the next SourceID.
func (set *Set) Add(name string, content []byte, readOnly bool) *Source {
	id := SourceID(len(set.sources))
	src := NewSource(id, name, content, readOnly)
	set.sources = append(set.sources, src)
	return src
}

// Get returns the source with the given ID, or nil if out of range.
func (set *Set) Get(id SourceID) *Source {
	if int(id) < 0 || int(id) >= len(set.sources) {
		return nil
	}
	return set.sources[id]
}
