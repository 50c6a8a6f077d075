package layout

// Line is a straight segment of the chart frame.
type Line struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Frame returns the segments that draw the diamond chart inside the padded
// canvas: the outer square, both diagonals and the inner diamond joining
// the midpoints of the square's sides.
func Frame() []Line {
	lo, hi := float64(Padding), float64(CanvasSize-Padding)
	mid := float64(CanvasSize) / 2

	tl, tr := Point{lo, lo}, Point{hi, lo}
	bl, br := Point{lo, hi}, Point{hi, hi}
	top, right := Point{mid, lo}, Point{hi, mid}
	bottom, left := Point{mid, hi}, Point{lo, mid}

	return []Line{
		{tl, tr}, {tr, br}, {br, bl}, {bl, tl},
		{tl, br}, {tr, bl},
		{top, right}, {right, bottom}, {bottom, left}, {left, top},
	}
}
