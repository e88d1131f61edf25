package binding

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/model"
)

type defaultGroup struct {
	toggle  string
	value   float64
	members []string
}

// BindDefaultGroup ties numeric fields to a boolean toggle. While the toggle is
// active every member is forced to value and rejects numeric changes;
// deactivating it releases the members without touching their values. The
// current toggle state is applied immediately.
func (r *Registry) BindDefaultGroup(toggle string, value float64, fields ...string) error {
	t, err := r.lookupKind("BindDefaultGroup", toggle, model.FieldKindBoolean)
	if err != nil {
		return err
	}
	if _, exists := r.groups[toggle]; exists {
		return fmt.Errorf("binding: toggle %q already drives a default group", toggle)
	}
	for _, member := range fields {
		if _, err := r.lookupKind("BindDefaultGroup", member, model.FieldKindNumeric); err != nil {
			return err
		}
		if owner, ok := r.memberOf[member]; ok {
			return fmt.Errorf("binding: field %q already belongs to the group of %q", member, owner)
		}
	}

	group := &defaultGroup{
		toggle:  toggle,
		value:   value,
		members: append([]string(nil), fields...),
	}
	r.groups[toggle] = group
	r.groupSeq = append(r.groupSeq, toggle)
	for _, member := range fields {
		r.memberOf[member] = toggle
	}

	if active, _ := t.value.(bool); active {
		r.applyGroup(group, true)
	}
	return nil
}

func (r *Registry) applyGroup(group *defaultGroup, active bool) {
	for _, name := range group.members {
		f := r.fields[name]
		if active {
			f.value = f.spec.Range.Clamp(group.value)
			f.lockedBy = group.toggle
			r.write(f)
			r.pushValue(name, f.value)
			r.pushEditable(name, false)
			continue
		}
		f.lockedBy = ""
		r.pushEditable(name, true)
	}
	r.logger.Debug("default group toggled",
		zap.String("toggle", group.toggle),
		zap.Bool("active", active),
		zap.Strings("fields", group.members))
}

func (r *Registry) reapplyGroups() {
	for _, toggle := range r.groupSeq {
		active, _ := r.fields[toggle].value.(bool)
		r.applyGroup(r.groups[toggle], active)
	}
}
