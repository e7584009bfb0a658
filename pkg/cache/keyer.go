package cache

import (
	"fmt"
)

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey keys a computed plan by document hash and layout options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by plan hash and render options.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a plan.
type LayoutKeyOpts struct {
	Format      string `json:"format"`
	Orientation string `json:"orientation"`
	Editing     bool   `json:"editing,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Print  bool   `json:"print,omitempty"`
	Scale  int    `json:"scale,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), planHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
