package cache

// Keyer generates cache keys.
type Keyer interface {
	// HTTPKey keys a fetched HTTP response.
	HTTPKey(namespace, key string) string
	// ChartKey keys a resolved chart by payload hash and resolver options.
	ChartKey(payloadHash string, opts ChartKeyOpts) string
	// ArtifactKey keys a rendered output by chart hash and render options.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// ChartKeyOpts are the resolver options that change a resolved chart.
type ChartKeyOpts struct {
	Strict        bool `json:"strict,omitempty"`
	DeriveDignity bool `json:"derive_dignity,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Palette        string  `json:"palette,omitempty"`
	Title          string  `json:"title,omitempty"`
	Scale          float64 `json:"scale,omitempty"`
	MarkRetrograde bool    `json:"mark_retrograde,omitempty"`
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ChartKey hashes the payload hash with the resolver options.
func (DefaultKeyer) ChartKey(payloadHash string, opts ChartKeyOpts) string {
	return hashKey("chart", payloadHash, opts)
}

// ArtifactKey hashes the chart hash with the render options.
func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}
