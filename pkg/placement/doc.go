// Package placement computes where every glyph of a resolved chart goes on
// the diamond canvas.
//
// An [Engine] combines a [layout.Table] with the sign/house arithmetic of
// package chart. [Engine.Planets] groups planets by house and fans out
// co-resident planets horizontally, StackStep units apart, in the
// direction the house's rule points. Planets keep their input order within
// a house. [Engine.Glyphs] places the twelve sign numbers and the twelve
// zodiac glyphs. [Engine.Render] bundles both into a [Model], the
// renderer-facing output.
//
// A planet that cannot be placed (invalid sign, or a house missing from the
// table) is dropped and logged. One bad planet never blanks the chart.
package placement
