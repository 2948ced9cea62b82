package keymap

import (
	"errors"
	"fmt"
	"sort"
)

// ErrReservedKey is returned when a config tries to rebind ctrl+c.
var ErrReservedKey = errors.New("ctrl+c is reserved for force quit")

// Overrides is the [keys] table of the config file: context -> key -> action.
// An action of "" or "none" unbinds the key.
type Overrides map[string]map[string]string

// Apply layers overrides on top of r. It validates everything before
// changing anything, so a bad config leaves r untouched.
func Apply(r *Registry, o Overrides) error {
	var bindings []Binding
	var unbinds []Binding

	contexts := make([]string, 0, len(o))
	for c := range o {
		contexts = append(contexts, c)
	}
	sort.Strings(contexts)

	for _, c := range contexts {
		ctx := Context(c)
		switch ctx {
		case ContextGlobal, ContextBrowsing, ContextSearching:
		default:
			return fmt.Errorf("keys: unknown context %q", c)
		}
		for k, a := range o[c] {
			if k == "" {
				return fmt.Errorf("keys.%s: empty key", c)
			}
			if k == "ctrl+c" {
				return fmt.Errorf("keys.%s: %w", c, ErrReservedKey)
			}
			if a == "" || a == "none" {
				unbinds = append(unbinds, Binding{Key: k, Context: ctx})
				continue
			}
			action := Action(a)
			if !action.Known() {
				return fmt.Errorf("keys.%s: %q: unknown action %q", c, k, a)
			}
			bindings = append(bindings, Binding{Key: k, Action: action, Context: ctx})
		}
	}

	for _, b := range unbinds {
		r.Unregister(b.Context, b.Key)
	}
	for _, b := range bindings {
		r.Register(b.Context, b.Key, b.Action)
	}
	return nil
}
