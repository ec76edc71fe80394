package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a physical key: a special key code, or KeyRune plus the character
type Key struct {
	Code tcell.Key
	Rune rune
}

// Special returns the key for a non-character code such as tcell.KeyUp
func Special(code tcell.Key) Key {
	return Key{Code: code}
}

// Char returns the key producing character r
func Char(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// FromEvent normalizes a tcell key event; the rune is dropped for special keys
func FromEvent(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Char(ev.Rune())
	}
	return Special(ev.Key())
}

// IsZero reports whether k is the unset key
func (k Key) IsZero() bool {
	return k == Key{}
}

func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		if name, ok := runeNames[k.Rune]; ok {
			return name
		}
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Code]; ok {
		return strings.ToLower(name)
	}
	return fmt.Sprintf("key(%d)", k.Code)
}

// Aliases for characters that are awkward in config files
var runeNames = map[rune]string{
	' ':  "space",
	'\\': "backslash",
	'#':  "hash",
}

var (
	specialByName map[string]tcell.Key
	runeByName    map[string]rune
)

func init() {
	specialByName = make(map[string]tcell.Key, len(tcell.KeyNames))
	for code, name := range tcell.KeyNames {
		specialByName[strings.ToLower(name)] = code
	}
	// Common spellings not in tcell's table
	specialByName["escape"] = tcell.KeyEsc
	specialByName["return"] = tcell.KeyEnter
	specialByName["pageup"] = tcell.KeyPgUp
	specialByName["pagedown"] = tcell.KeyPgDn

	runeByName = make(map[string]rune, len(runeNames))
	for r, name := range runeNames {
		runeByName[name] = r
	}
}

// ParseKey resolves a key name: a single character, a rune alias like "space",
// or a special key name as tcell spells it ("up", "ctrl-q", "f1"), case-insensitive for names
func ParseKey(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Char(r), nil
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	if r, ok := runeByName[lower]; ok {
		return Char(r), nil
	}
	if code, ok := specialByName[strings.ReplaceAll(lower, "+", "-")]; ok {
		return Special(code), nil
	}
	return Key{}, fmt.Errorf("input: unknown key name %q", name)
}
