package pattern

import (
	"math/rand"
	"sort"

	"ScaffoldGen/internal/params"
)

// Rasterizer draws one template through d. rng is the render's random
// source; templates that scatter sites must draw from it for every
// primitive, owned or not, so that all layers see the same sites.
type Rasterizer func(d *Drawer, p *params.ScaffoldParams, rng *rand.Rand) error

var rasterizers = make(map[params.TemplateID]Rasterizer)

func RegisterRasterizer(id params.TemplateID, r Rasterizer) {
	rasterizers[id] = r
}

// AvailableTemplates lists the templates with a registered rasterizer, sorted.
func AvailableTemplates() []params.TemplateID {
	ids := make([]params.TemplateID, 0, len(rasterizers))
	for id := range rasterizers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func rasterizerFor(id params.TemplateID) (Rasterizer, bool) {
	r, ok := rasterizers[id]
	return r, ok
}
