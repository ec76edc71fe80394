package input

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Action is a game-level command a key is bound to
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionFire
	ActionPause
	ActionQuit
)

// actionNames maps canonical names used in config files
var actionNames = map[string]Action{
	"none":  ActionNone,
	"up":    ActionUp,
	"down":  ActionDown,
	"left":  ActionLeft,
	"right": ActionRight,
	"fire":  ActionFire,
	"pause": ActionPause,
	"quit":  ActionQuit,
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("action(%d)", a)
}

// ParseAction resolves a canonical action name
func ParseAction(name string) (Action, error) {
	if a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return ActionNone, fmt.Errorf("input: unknown action %q", name)
}

// Bindings maps keys to actions
type Bindings struct {
	keys map[Key]Action
}

// DefaultBindings returns arrows plus vi-style hjkl for movement, space to fire, p to pause, q or Ctrl-Q to quit
func DefaultBindings() *Bindings {
	return &Bindings{keys: map[Key]Action{
		Special(tcell.KeyUp):    ActionUp,
		Special(tcell.KeyDown):  ActionDown,
		Special(tcell.KeyLeft):  ActionLeft,
		Special(tcell.KeyRight): ActionRight,
		Char('k'):               ActionUp,
		Char('j'):               ActionDown,
		Char('h'):               ActionLeft,
		Char('l'):               ActionRight,
		Char(' '):               ActionFire,
		Special(tcell.KeyEnter): ActionFire,
		Char('p'):               ActionPause,
		Char('q'):               ActionQuit,
		Special(tcell.KeyCtrlQ): ActionQuit,
	}}
}

// Lookup returns the action bound to k, or ActionNone
func (b *Bindings) Lookup(k Key) Action {
	return b.keys[k]
}

// Bind maps k to a; binding ActionNone removes the key
func (b *Bindings) Bind(k Key, a Action) {
	if a == ActionNone {
		delete(b.keys, k)
		return
	}
	b.keys[k] = a
}

// ByAction groups bound keys per action, each group in a stable order
func (b *Bindings) ByAction() map[Action][]Key {
	out := make(map[Action][]Key)
	for k, a := range b.keys {
		out[a] = append(out[a], k)
	}
	for _, keys := range out {
		slices.SortFunc(keys, func(x, y Key) int {
			if x.Code != y.Code {
				return int(x.Code) - int(y.Code)
			}
			return int(x.Rune) - int(y.Rune)
		})
	}
	return out
}

// Apply overrides bindings from key name to action name pairs, as read from configuration
// The first invalid entry aborts and leaves b unchanged
func (b *Bindings) Apply(overrides map[string]string) error {
	parsed := make(map[Key]Action, len(overrides))
	for keyName, actionName := range overrides {
		k, err := ParseKey(keyName)
		if err != nil {
			return fmt.Errorf("binding %q: %w", keyName, err)
		}
		a, err := ParseAction(actionName)
		if err != nil {
			return fmt.Errorf("binding %q: %w", keyName, err)
		}
		parsed[k] = a
	}
	for k, a := range parsed {
		b.Bind(k, a)
	}
	return nil
}
