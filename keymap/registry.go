package keymap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Binding is one key mapped to an action.
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry maps key strings, as reported by tea.KeyMsg.String, to actions.
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[Context]map[string]Action)}
}

// Register binds key to action in ctx, replacing any previous binding.
func (r *Registry) Register(ctx Context, k string, action Action) {
	if r.bindings[ctx] == nil {
		r.bindings[ctx] = make(map[string]Action)
	}
	r.bindings[ctx][k] = action
}

// RegisterMultiple binds several keys to the same action.
func (r *Registry) RegisterMultiple(ctx Context, keys []string, action Action) {
	for _, k := range keys {
		r.Register(ctx, k, action)
	}
}

// Unregister removes a binding.
func (r *Registry) Unregister(ctx Context, k string) {
	delete(r.bindings[ctx], k)
}

// Match resolves a key in ctx, falling back to the global context.
func (r *Registry) Match(ctx Context, k string) (Action, bool) {
	if a, ok := r.bindings[ctx][k]; ok {
		return a, true
	}
	if a, ok := r.bindings[ContextGlobal][k]; ok {
		return a, true
	}
	return "", false
}

// Keys returns the keys bound to action in ctx, sorted.
func (r *Registry) Keys(ctx Context, action Action) []string {
	var keys []string
	for k, a := range r.bindings[ctx] {
		if a == action {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Bindings lists every binding of ctx, ordered by action then key.
func (r *Registry) Bindings(ctx Context) []Binding {
	var out []Binding
	for k, a := range r.bindings[ctx] {
		out = append(out, Binding{Key: k, Action: a, Context: ctx})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// HelpKeys returns one bubbles key binding per action of ctx, for rendering
// with the help bubble. order fixes which actions appear and in what order.
func (r *Registry) HelpKeys(ctx Context, order []Action) []key.Binding {
	var out []key.Binding
	for _, a := range order {
		keys := r.Keys(ctx, a)
		if len(keys) == 0 {
			keys = r.Keys(ContextGlobal, a)
		}
		if len(keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), a.Description()),
		))
	}
	return out
}
