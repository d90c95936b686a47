package lsp

import (
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex translates between byte offsets and LSP positions, which count
// lines from 0 and characters in UTF-16 code units.
type lineIndex struct {
	source string
	starts []int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{source: source, starts: starts}
}

func (x *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(x.source)))
	line, found := slices.BinarySearch(x.starts, offset)
	if !found {
		line--
	}
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(utf16Len(x.source[x.starts[line]:offset])),
	}
}

// offset is the inverse of position. Positions past the end of a line clamp
// to the line end.
func (x *lineIndex) offset(pos protocol.Position) int {
	if int(pos.Line) >= len(x.starts) {
		return len(x.source)
	}
	i := x.starts[pos.Line]
	for units := uint32(0); i < len(x.source) && x.source[i] != '\n'; {
		r, size := utf8.DecodeRuneInString(x.source[i:])
		if units+uint32(runeUnits(r)) > pos.Character {
			break
		}
		units += uint32(runeUnits(r))
		i += size
	}
	return i
}

func (x *lineIndex) end() protocol.Position {
	return x.position(len(x.source))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
