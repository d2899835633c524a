package internal

import (
	"go/token"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}

// lineIndex turns rune offsets into positions. Columns count runes from 1;
// Offset is the byte offset.
type lineIndex struct {
	filename   string
	text       []rune
	lineStarts []int
	byteStarts []int
}

func newLineIndex(filename string, text []rune) *lineIndex {
	idx := &lineIndex{
		filename:   filename,
		text:       text,
		lineStarts: []int{0},
		byteStarts: []int{0},
	}
	b := 0
	for i, r := range text {
		b += utf8.RuneLen(r)
		if r == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
			idx.byteStarts = append(idx.byteStarts, b)
		}
	}
	return idx
}

func (idx *lineIndex) Position(offset int) token.Position {
	offset = min(max(offset, 0), len(idx.text))
	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	start := idx.lineStarts[line]
	b := idx.byteStarts[line]
	for _, r := range idx.text[start:offset] {
		b += utf8.RuneLen(r)
	}
	return token.Position{
		Filename: idx.filename,
		Offset:   b,
		Line:     line + 1,
		Column:   offset - start + 1,
	}
}
