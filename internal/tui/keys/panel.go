package keys

import "github.com/charmbracelet/bubbles/key"

// PanelKeys drive the amplifier from the panel
type PanelKeys struct {
	CommonKeys
	PowerOn    key.Binding
	PowerOff   key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Amount     key.Binding
	Reset      key.Binding
	Status     key.Binding
}

func NewPanelKeys() PanelKeys {
	return PanelKeys{
		CommonKeys: NewCommonKeys(),
		PowerOn: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "power on"),
		),
		PowerOff: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "power off"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "=", "k", "up"),
			key.WithHelp("+/k", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "j", "down"),
			key.WithHelp("-/j", "volume down"),
		),
		Amount: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "volume amount"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset all"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "refresh status"),
		),
	}
}

func (k PanelKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.PowerOn, k.PowerOff, k.VolumeUp, k.VolumeDown, k.Help, k.Quit}
}

func (k PanelKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PowerOn, k.PowerOff, k.Reset},
		{k.VolumeUp, k.VolumeDown, k.Amount},
		{k.Status, k.Help, k.Quit},
	}
}
