package fyneview

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/wizard"
)

// Wizard shows one Form per controller page with Back and Next buttons. Next
// is enabled only while the current page is valid.
type Wizard struct {
	ctrl    *wizard.Controller
	logger  *zap.Logger
	forms   []*Form
	objects []fyne.CanvasObject

	content *fyne.Container
	back    *widget.Button
	next    *widget.Button

	onFinish func()
}

// NewWizard builds forms for every page of ctrl. onFinish runs when Next is
// pressed on the valid last page.
func NewWizard(ctrl *wizard.Controller, logger *zap.Logger, onFinish func()) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wizard{
		ctrl:     ctrl,
		logger:   logger,
		content:  container.NewStack(),
		onFinish: onFinish,
	}
	w.back = widget.NewButton("Back", w.onBack)
	w.next = widget.NewButton("Next", w.onNext)

	for _, page := range ctrl.Pages() {
		form := NewForm(page, logger)
		w.forms = append(w.forms, form)
		w.objects = append(w.objects, form.Object())
		page.Registry().Observe(func(binding.Validity) { w.refreshButtons() })
	}
	w.show()
	return w
}

// Object returns the canvas object to place in a window.
func (w *Wizard) Object() fyne.CanvasObject {
	buttons := container.NewHBox(w.back, layout.NewSpacer(), w.next)
	return container.NewBorder(nil, buttons, nil, nil, w.content)
}

// Current returns the form of the active page.
func (w *Wizard) Current() *Form {
	return w.forms[w.ctrl.State().Index]
}

func (w *Wizard) onBack() {
	if err := w.ctrl.Prev(); err != nil {
		w.logger.Debug("back ignored", zap.Error(err))
		return
	}
	w.show()
}

func (w *Wizard) onNext() {
	err := w.ctrl.Next()
	switch {
	case err == nil:
		w.show()
	case errors.Is(err, wizard.ErrLastPage):
		if w.onFinish != nil {
			w.onFinish()
		}
	default:
		w.logger.Debug("next ignored", zap.Error(err))
	}
}

func (w *Wizard) show() {
	idx := w.ctrl.State().Index
	w.content.Objects = []fyne.CanvasObject{w.objects[idx]}
	w.content.Refresh()
	w.refreshButtons()
}

func (w *Wizard) refreshButtons() {
	state := w.ctrl.State()
	if state.Index == 0 {
		w.back.Disable()
	} else {
		w.back.Enable()
	}
	if state.Index == state.Count-1 {
		w.next.SetText("Finish")
	} else {
		w.next.SetText("Next")
	}
	if state.CanContinue {
		w.next.Enable()
	} else {
		w.next.Disable()
	}
}
