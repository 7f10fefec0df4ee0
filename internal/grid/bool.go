package grid

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Bool is a dense width×height buffer of booleans indexed by (x, y).
type Bool struct {
	width, height int
	cells         []bool
}

// NewBool allocates a buffer with every cell false.
func NewBool(width, height int) *Bool {
	if width < 0 || height < 0 {
		panic("grid: negative dimensions")
	}
	return &Bool{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (b *Bool) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bool) Height() int { return b.height }

// Len returns the total number of cells.
func (b *Bool) Len() int { return len(b.cells) }

// InBounds reports whether (x, y) addresses a cell.
func (b *Bool) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell value. ok is false when (x, y) is out of range.
func (b *Bool) Get(x, y int) (value, ok bool) {
	if !b.InBounds(x, y) {
		return false, false
	}
	return b.cells[y*b.width+x], true
}

// At returns the cell value, or def when (x, y) is out of range.
func (b *Bool) At(x, y int, def bool) bool {
	if v, ok := b.Get(x, y); ok {
		return v
	}
	return def
}

// Set writes a cell. It panics when (x, y) is out of range.
func (b *Bool) Set(x, y int, v bool) {
	if !b.InBounds(x, y) {
		panic("grid: set out of range")
	}
	b.cells[y*b.width+x] = v
}

// Fill sets every cell to v.
func (b *Bool) Fill(v bool) {
	for i := range b.cells {
		b.cells[i] = v
	}
}

// Count returns how many cells equal v.
func (b *Bool) Count(v bool) int {
	n := 0
	for _, c := range b.cells {
		if c == v {
			n++
		}
	}
	return n
}

// Each calls fn for every cell in row-major order.
func (b *Bool) Each(fn func(x, y int, v bool)) {
	for i, c := range b.cells {
		fn(i%b.width, i/b.width, c)
	}
}

// Digest hashes the dimensions and contents. Equal buffers have equal digests.
func (b *Bool) Digest() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 8+len(b.cells))
	buf = append(buf,
		byte(b.width>>24), byte(b.width>>16), byte(b.width>>8), byte(b.width),
		byte(b.height>>24), byte(b.height>>16), byte(b.height>>8), byte(b.height))
	for _, c := range b.cells {
		if c {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

// String renders true cells as '#' and false cells as '.', one row per line,
// row 0 first.
func (b *Bool) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[y*b.width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBool reads the '#'/'.' format written by String. Rows may differ in
// length; short rows are padded with false.
func ParseBool(s string) *Bool {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	b := NewBool(width, len(lines))
	for y, l := range lines {
		for x := 0; x < len(l); x++ {
			if l[x] == '#' {
				b.Set(x, y, true)
			}
		}
	}
	return b
}
