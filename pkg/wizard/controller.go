package wizard

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/settings"
)

var (
	// ErrNoPages is returned when a controller is built without pages.
	ErrNoPages = errors.New("wizard: no pages")
	// ErrIncomplete is returned by Next while required fields are blank.
	ErrIncomplete = errors.New("wizard: required fields are blank")
	// ErrLastPage is returned by Next on the final page.
	ErrLastPage = errors.New("wizard: already on the last page")
	// ErrFirstPage is returned by Prev on the first page.
	ErrFirstPage = errors.New("wizard: already on the first page")
)

// State describes the current page for presentation layers.
type State struct {
	Page        string
	Index       int
	Count       int
	CanContinue bool
	Blank       []string
	Focus       string
}

// StateHandler receives a State whenever the current page or its validity
// changes.
type StateHandler func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStateHandler subscribes fn to state changes.
func WithStateHandler(fn StateHandler) Option {
	return func(c *Controller) {
		c.handler = fn
	}
}

// Controller sequences wizard pages and gates the continue action on the
// current page's validity.
type Controller struct {
	pages   []pages.Page
	current int
	focus   string
	handler StateHandler
	logger  *zap.Logger
}

// New builds a controller over pages and activates the first one.
func New(list []pages.Page, options ...Option) (*Controller, error) {
	if len(list) == 0 {
		return nil, ErrNoPages
	}
	seen := make(map[string]struct{}, len(list))
	for _, page := range list {
		if _, exists := seen[page.ID()]; exists {
			return nil, fmt.Errorf("wizard: duplicate page %q", page.ID())
		}
		seen[page.ID()] = struct{}{}
	}

	c := &Controller{
		pages:  append([]pages.Page(nil), list...),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	for idx, page := range c.pages {
		idx := idx
		page.Registry().Observe(func(binding.Validity) {
			if idx == c.current {
				c.emit()
			}
		})
	}
	c.activate()
	return c, nil
}

// Current returns the active page.
func (c *Controller) Current() pages.Page {
	return c.pages[c.current]
}

// Pages returns the pages in order.
func (c *Controller) Pages() []pages.Page {
	return append([]pages.Page(nil), c.pages...)
}

// CanContinue reports whether the active page is valid.
func (c *Controller) CanContinue() bool {
	return c.Current().Registry().IsValid()
}

// State returns a snapshot of the active page.
func (c *Controller) State() State {
	reg := c.Current().Registry()
	return State{
		Page:        c.Current().ID(),
		Index:       c.current,
		Count:       len(c.pages),
		CanContinue: reg.IsValid(),
		Blank:       reg.BlankRequired(),
		Focus:       c.focus,
	}
}

// Next advances when the active page is valid.
func (c *Controller) Next() error {
	if !c.CanContinue() {
		return fmt.Errorf("%w: %v", ErrIncomplete, c.Current().Registry().BlankRequired())
	}
	if c.current == len(c.pages)-1 {
		return ErrLastPage
	}
	c.current++
	c.activate()
	return nil
}

// Prev moves back one page. Going back is never gated on validity.
func (c *Controller) Prev() error {
	if c.current == 0 {
		return ErrFirstPage
	}
	c.current--
	c.activate()
	return nil
}

// Done reports whether the last page is active and valid.
func (c *Controller) Done() bool {
	return c.current == len(c.pages)-1 && c.CanContinue()
}

// LoadPresets populates every page from a loaded template.
func (c *Controller) LoadPresets(presets settings.Record) {
	for _, page := range c.pages {
		page.LoadPresets(presets)
	}
	c.logger.Debug("presets loaded", zap.Int("pages", len(c.pages)))
}

// Reset clears the active page.
func (c *Controller) Reset() {
	c.Current().Registry().ClearAll()
	c.logger.Debug("page reset", zap.String("page", c.Current().ID()))
}

func (c *Controller) activate() {
	page := c.Current()
	c.focus = page.OnActivation()
	c.logger.Debug("page activated",
		zap.String("page", page.ID()),
		zap.Int("index", c.current),
		zap.String("focus", c.focus))
	c.emit()
}

func (c *Controller) emit() {
	if c.handler != nil {
		c.handler(c.State())
	}
}
