package sink

import "github.com/matzehuels/callsheet/pkg/layout"

// RenderJSON encodes the plan as indented JSON, the same form the layout
// cache stores.
func RenderJSON(plan layout.Plan) ([]byte, error) {
	return layout.MarshalPlan(plan)
}
