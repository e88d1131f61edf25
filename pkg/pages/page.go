package pages

import (
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/settings"
)

// Page is the contract the wizard controller drives.
type Page interface {
	ID() string
	Title() string
	Subtitle() string
	Registry() *binding.Registry
	// ObserveView attaches the presentation layer that reports edits to the
	// page's registry and receives registry-driven updates.
	ObserveView(view binding.View)
	// LoadPresets populates the page from a loaded template.
	LoadPresets(presets settings.Record)
	// OnActivation runs when the page becomes current and names the field
	// that should receive focus.
	OnActivation() string
}

type basePage struct {
	def      model.Page
	registry *binding.Registry
}

func (p *basePage) ID() string {
	return p.def.ID
}

func (p *basePage) Title() string {
	return p.def.Title
}

func (p *basePage) Subtitle() string {
	return p.def.Subtitle
}

func (p *basePage) Registry() *binding.Registry {
	return p.registry
}

func (p *basePage) ObserveView(view binding.View) {
	p.registry.SetView(view)
}
