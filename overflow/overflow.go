// Package overflow decides how many rows of a day cell fit in its fixed height
// and how many are left for the "+N more" list.
package overflow

import "fmt"

// Tolerance absorbs rounding of fractional layouts when comparing edges.
const Tolerance = 0.5

// Box is the vertical extent of an element, relative to the top of its container.
type Box struct {
	Top    float64
	Bottom float64
}

func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// Stack lays rows of the given heights one after the other from offset zero.
func Stack(heights ...float64) []Box {
	rows := make([]Box, len(heights))
	top := 0.0
	for i, h := range heights {
		rows[i] = Box{Top: top, Bottom: top + h}
		top += h
	}
	return rows
}

func (b Box) contains(row Box) bool {
	return row.Top >= b.Top-Tolerance && row.Bottom <= b.Bottom+Tolerance
}

// VisibleCount returns how many leading rows lie entirely inside container.
// Counting stops at the first row that doesn't fit: rows are stacked
// vertically, so none of the following ones can fit either.
func VisibleCount(container Box, rows []Box) int {
	if container.Height() <= 0 {
		return 0
	}
	visible := 0
	for _, row := range rows {
		if !container.contains(row) {
			break
		}
		visible++
	}
	return visible
}

// Result is the outcome of measuring a cell.
type Result struct {
	Total   int
	Visible int
	Hidden  int
}

// Measure computes the visible and hidden row counts for rows inside container.
func Measure(container Box, rows []Box) Result {
	v := VisibleCount(container, rows)
	return Result{
		Total:   len(rows),
		Visible: v,
		Hidden:  len(rows) - v,
	}
}

// ShowMore reports whether the "+N more" control should be shown.
func (r Result) ShowMore() bool {
	return r.Hidden > 0
}

func (r Result) Label() string {
	if !r.ShowMore() {
		return ""
	}
	return fmt.Sprintf("+%d more", r.Hidden)
}
