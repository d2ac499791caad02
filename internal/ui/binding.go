package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned when a bound action name resolves to
	// nothing.
	ErrUnknownAction = errors.New("ui: unknown action")
	// ErrUnresolved is returned when a mode-dependent binding has no
	// callback for the current mode.
	ErrUnresolved = errors.New("ui: no callback for current mode")
)

// Action is a resolved callback.
type Action func() error

// Kind tags the dispatch form of a Binding.
type Kind uint8

const (
	// BindCall runs one callback.
	BindCall Kind = iota + 1
	// BindPage switches to the screen named by Target.
	BindPage
	// BindIndexed picks a callback from Calls by the current Index.
	BindIndexed
	// BindModal picks a callback from Modes by the current Mode.
	BindModal
)

func (k Kind) String() string {
	switch k {
	case BindCall:
		return "call"
	case BindPage:
		return "page"
	case BindIndexed:
		return "indexed"
	case BindModal:
		return "modal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Binding is what an action name stands for.
type Binding struct {
	Kind Kind

	Call Action

	Target string
	Show   func(key string) error

	Index func() int
	Calls []Action

	Mode  func() string
	Modes map[string]Action
}

// Actions maps action names to bindings.
type Actions map[string]Binding

// Call binds a plain callback.
func Call(fn Action) Binding {
	return Binding{Kind: BindCall, Call: fn}
}

// SwitchTo binds a page switch to target.
func SwitchTo(target string, show func(key string) error) Binding {
	return Binding{Kind: BindPage, Target: target, Show: show}
}

// Indexed binds a callback chosen by index() among calls.
func Indexed(index func() int, calls ...Action) Binding {
	return Binding{Kind: BindIndexed, Index: index, Calls: calls}
}

// Modal binds a callback chosen by mode() among modes.
func Modal(mode func() string, modes map[string]Action) Binding {
	return Binding{Kind: BindModal, Mode: mode, Modes: modes}
}

// Resolve returns the callback the binding currently stands for.
func (b Binding) Resolve() (Action, error) {
	switch b.Kind {
	case BindCall:
		if b.Call == nil {
			return nil, ErrUnknownAction
		}
		return b.Call, nil
	case BindPage:
		if b.Show == nil || b.Target == "" {
			return nil, ErrUnknownAction
		}
		show, target := b.Show, b.Target
		return func() error { return show(target) }, nil
	case BindIndexed:
		i := b.Index()
		if i < 0 || i >= len(b.Calls) || b.Calls[i] == nil {
			return nil, fmt.Errorf("%w: index %d of %d", ErrUnresolved, i, len(b.Calls))
		}
		return b.Calls[i], nil
	case BindModal:
		m := b.Mode()
		fn, ok := b.Modes[m]
		if !ok || fn == nil {
			return nil, fmt.Errorf("%w: mode %q", ErrUnresolved, m)
		}
		return fn, nil
	default:
		return nil, fmt.Errorf("%w: binding kind %v", ErrUnknownAction, b.Kind)
	}
}

// BindingError reports a direction bound to an action that cannot be
// resolved.
type BindingError struct {
	Screen    string
	Direction string
	Action    string
	Err       error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("ui: screen %s: %s -> %q: %v", e.Screen, e.Direction, e.Action, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }
