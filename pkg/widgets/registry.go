package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetDate     = "date"
	WidgetEmail    = "email"
)

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget renderers for fields based on an explicit widget or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. A widget already set on the
// field is honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, setting Widget on every field of the
// form that resolves to one.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for s := range form.Sections {
		fields := form.Sections[s].Fields
		for idx := range fields {
			if widget, ok := r.Resolve(fields[idx]); ok {
				fields[idx].Widget = widget
			}
		}
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return schema.IsBoolean(field.Type)
	})

	r.Register(WidgetTextarea, 80, func(field model.Field) bool {
		return field.Type == schema.TypeTextarea
	})

	r.Register(WidgetRadio, 75, func(field model.Field) bool {
		return field.Type == schema.TypeRadio && len(field.Options) > 0
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return field.Type == schema.TypeSelect || (field.Type != schema.TypeRadio && len(field.Options) > 0)
	})

	r.Register(WidgetDate, 60, func(field model.Field) bool {
		return field.Type == schema.TypeDate
	})

	r.Register(WidgetEmail, 50, func(field model.Field) bool {
		if field.Type == schema.TypeEmail {
			return true
		}
		return field.Type == schema.TypeText && strings.Contains(strings.ToLower(field.Key), "email")
	})

	r.Register(WidgetText, 0, func(model.Field) bool {
		return true
	})
}
