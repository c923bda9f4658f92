// Package keybind matches key events against configurable key strings such as
// "r", "ctrl+r" or "shift+tab".
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of equivalent keys with help text.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	k := &Keybind{}
	for _, option := range options {
		option(k)
	}
	return *k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = normalizeKeys(keys...)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k *Keybind) SetKeys(keys ...string) {
	k.keys = normalizeKeys(keys...)
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows in help.
// A keybind without keys is never enabled.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

type Help struct {
	Key  string
	Desc string
}

// Matches reports whether the event matches one of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	return MatchesKey(eventKeyString(event), keybinds...)
}

// MatchesKey reports whether the key string matches one of the enabled
// keybinds.
func MatchesKey(key string, keybinds ...Keybind) bool {
	key = normalizeKey(key)
	if key == "" {
		return false
	}
	for _, keybind := range keybinds {
		if keybind.Enabled() && slices.Contains(keybind.keys, key) {
			return true
		}
	}
	return false
}

func normalizeKeys(keys ...string) []string {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" && !slices.Contains(normalized, key) {
			normalized = append(normalized, key)
		}
	}
	return normalized
}

// modifierOrder is the canonical order of modifiers in a key string.
var modifierOrder = []string{"ctrl", "alt", "shift", "meta"}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	// A lone "+" is the plus key, not a separator.
	if key == "+" {
		return key
	}

	mods := make(map[string]bool, len(modifierOrder))
	primary := ""
	for _, part := range strings.Split(key, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
			continue
		case "ctrl", "control":
			mods["ctrl"] = true
		case "alt", "option":
			mods["alt"] = true
		case "shift":
			mods["shift"] = true
		case "meta", "cmd":
			mods["meta"] = true
		default:
			primary = normalizePrimaryKey(part)
		}
	}
	if primary == "" {
		return ""
	}

	if primary == "backtab" {
		mods["shift"] = true
		primary = "tab"
	}
	if len(mods) > 0 && len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}

	parts := make([]string, 0, len(mods)+1)
	for _, mod := range modifierOrder {
		if mods[mod] {
			parts = append(parts, mod)
		}
	}
	return strings.Join(append(parts, primary), "+")
}

func normalizePrimaryKey(key string) string {
	if strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) >= 7 {
		return key[5 : len(key)-1]
	}
	if len([]rune(key)) == 1 {
		return key
	}

	switch key = strings.ToLower(key); key {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdn"
	case "del":
		return "delete"
	}
	return key
}

func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()
	primary := keyName(key)
	if primary == "" && key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}
	if primary == "" && key == tcell.KeyRune {
		primary = event.Str()
	}
	if primary == "" {
		return normalizeKey(event.Name())
	}

	var parts []string
	for _, mod := range []struct {
		mask tcell.ModMask
		name string
	}{
		{tcell.ModCtrl, "ctrl"},
		{tcell.ModAlt, "alt"},
		{tcell.ModShift, "shift"},
		{tcell.ModMeta, "meta"},
	} {
		if event.Modifiers()&mod.mask != 0 {
			parts = append(parts, mod.name)
		}
	}
	return normalizeKey(strings.Join(append(parts, primary), "+"))
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
	tcell.KeyF5:         "f5",
}

func keyName(key tcell.Key) string {
	return keyNames[key]
}
