package rewrite

import (
	"bytes"
	"fmt"
	"sort"
)

// span is a single pending edit: the bytes in [start, end) are replaced by
// text. An insertion has start == end, a deletion has empty text.
type span struct {
	start, end int
	text       string
}

// EditBuffer collects byte-range edits against one source buffer and applies
// them in a single pass. Edits may be added in any order but must not
// overlap; insertions at the same offset keep their insertion order.
type EditBuffer struct {
	src   []byte
	spans []span
}

func NewEditBuffer(src []byte) *EditBuffer {
	return &EditBuffer{src: src}
}

// Replace substitutes text for the bytes in [start, end).
func (b *EditBuffer) Replace(start, end int, text string) {
	b.spans = append(b.spans, span{start: start, end: end, text: text})
}

// Delete removes the bytes in [start, end).
func (b *EditBuffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Insert places text before the byte at offset at.
func (b *EditBuffer) Insert(at int, text string) {
	b.Replace(at, at, text)
}

// Empty reports whether no edits are pending.
func (b *EditBuffer) Empty() bool {
	return len(b.spans) == 0
}

// Apply materializes the edited source. The original buffer is left intact.
func (b *EditBuffer) Apply() ([]byte, error) {
	spans := make([]span, len(b.spans))
	copy(spans, b.spans)
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	var out bytes.Buffer
	out.Grow(len(b.src))
	cursor := 0
	for _, sp := range spans {
		if sp.start < 0 || sp.end > len(b.src) || sp.start > sp.end {
			return nil, fmt.Errorf("edit [%d,%d) is out of range", sp.start, sp.end)
		}
		if sp.start < cursor {
			return nil, fmt.Errorf("edit [%d,%d) overlaps a previous edit", sp.start, sp.end)
		}
		out.Write(b.src[cursor:sp.start])
		out.WriteString(sp.text)
		cursor = sp.end
	}
	out.Write(b.src[cursor:])
	return out.Bytes(), nil
}
