// Package resolve turns a chart payload of unknown shape into a canonical
// [chart.Chart].
//
// # Shapes
//
// Upstream APIs wrap the chart differently: under data.rasiChart, under a
// generic chart key, bare at the top level, or one level down under data.
// Each wrapping is described by a [Matcher], an ordered list of JSONPath
// containment paths plus an acceptance test. The [Resolver] tries its
// matchers in priority order and stops at the first match:
//
//	rasiChart  $.data.rasiChart, $.rasiChart, ...
//	chart      $.data.chart, $.chart
//	bare       $ or $.data holding planets and ascendant
//	payload    the whole object (last resort)
//
// Supporting a new upstream shape means adding a matcher, not editing the
// resolution logic.
//
// # Missing and malformed data
//
// Absent data is not an error. When the located object has no ascendant,
// one is inferred from an overview/lagna field elsewhere in the payload.
// When planets or ascendant are still missing, a placeholder chart is
// synthesized (see [Placeholder]) unless [Options.Strict] is set, in which
// case NO_CHART_DATA is returned.
//
// Malformed data is an error. A planet or ascendant field that is present
// but cannot be read as a sign in 1..12 yields INVALID_CHART_DATA and never
// falls through to synthesis.
//
// Resolution performs no I/O. Decisions are reported through the injected
// logger at debug and warn level.
package resolve
