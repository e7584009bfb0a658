package pipeline

import (
	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// ComputeLayout builds the plan for doc. Page format and orientation come
// from opts when set, otherwise from the document.
func ComputeLayout(doc *sheet.Document, opts Options) (layout.Plan, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Plan{}, err
	}
	lo := opts.LayoutOptions(doc)
	plan := layout.Build(doc, lo)

	opts.Logger.Debug("built plan",
		"format", lo.Format,
		"orientation", lo.Orientation,
		"pages", len(plan.Pages),
		"print_pages", len(plan.Print))
	for _, w := range plan.Warnings {
		opts.Logger.Warn(w)
	}
	return plan, nil
}
