package pullrefresh

import "github.com/xqrs/tview-pull/keybind"

// KeyMap holds the key bindings of a Panel. It implements help.KeyMap.
type KeyMap struct {
	Refresh keybind.Keybind
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: keybind.NewKeybind(
			keybind.WithKeys("r", "ctrl+r"),
			keybind.WithHelp("r", "refresh"),
		),
	}
}

func (k KeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Refresh}
}

func (k KeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{{k.Refresh}}
}
