package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the timeline key bindings.
type KeyMap struct {
	ToStart     key.Binding
	ToEnd       key.Binding
	Stop        key.Binding
	StepBack    key.Binding
	StepForward key.Binding
	Rewind      key.Binding
	FastForward key.Binding
	Reload      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToStart: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Play back"),
		),
		ToEnd: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Play"),
		),
		Stop: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("Space", "Stop"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("[", ","),
			key.WithHelp("[", "Step"),
		),
		StepForward: key.NewBinding(
			key.WithKeys("]", "."),
			key.WithHelp("]", "Step"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "Begin"),
		),
		FastForward: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "End"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// footerBindings are shown in the footer, in order.
func (k KeyMap) footerBindings() []key.Binding {
	return []key.Binding{k.ToStart, k.ToEnd, k.Stop, k.StepBack, k.StepForward, k.Rewind, k.FastForward, k.Reload, k.Quit}
}
