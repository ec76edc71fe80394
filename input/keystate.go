package input

// KeyState tracks one logical key that any of several physical keys may drive
// IsPressed follows the latest event; JustPressed compares with the state saved by Remember
type KeyState struct {
	keys   []Key
	now    bool
	before bool
}

// NewKeyState watches the given keys, usually a primary key and an alternate
func NewKeyState(keys ...Key) *KeyState {
	if len(keys) == 0 {
		panic("input: key state needs at least one key")
	}
	return &KeyState{keys: keys}
}

// Check updates the state when k is one of the watched keys
func (s *KeyState) Check(k Key, pressed bool) {
	for _, w := range s.keys {
		if w == k {
			s.now = pressed
			return
		}
	}
}

func (s *KeyState) IsPressed() bool { return s.now }

// JustPressed reports a press that happened since the last Remember
func (s *KeyState) JustPressed() bool { return !s.before && s.now }

// Remember saves the current state; call once per tick after reading it
func (s *KeyState) Remember() { s.before = s.now }

// Keys returns the watched keys
func (s *KeyState) Keys() []Key { return s.keys }

// Keyboard groups the key states of one game so events and ticks reach all of them
type Keyboard struct {
	states map[Action]*KeyState
}

// NewKeyboard builds one KeyState per action from the bindings
func NewKeyboard(b *Bindings) *Keyboard {
	kb := &Keyboard{states: make(map[Action]*KeyState)}
	for action, keys := range b.ByAction() {
		if action == ActionNone || len(keys) == 0 {
			continue
		}
		kb.states[action] = NewKeyState(keys...)
	}
	return kb
}

// Handle feeds a key event to every state; its signature matches the frame loop's key handler
func (kb *Keyboard) Handle(k Key, pressed bool) {
	for _, s := range kb.states {
		s.Check(k, pressed)
	}
}

// State returns the tracker of action, or nil when the action is unbound
func (kb *Keyboard) State(a Action) *KeyState {
	return kb.states[a]
}

// IsPressed reports whether any key bound to a is held
func (kb *Keyboard) IsPressed(a Action) bool {
	s := kb.states[a]
	return s != nil && s.IsPressed()
}

// JustPressed reports whether a was pressed since the last Remember
func (kb *Keyboard) JustPressed(a Action) bool {
	s := kb.states[a]
	return s != nil && s.JustPressed()
}

// Remember saves every state at the end of a tick
func (kb *Keyboard) Remember() {
	for _, s := range kb.states {
		s.Remember()
	}
}
