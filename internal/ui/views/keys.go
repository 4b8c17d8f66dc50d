package views

import "charm.land/bubbles/v2/key"

var (
	replayKey = key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "replay"),
	)
	rangeDownKey = key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "shorter range"),
	)
	rangeUpKey = key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "longer range"),
	)
	intervalDownKey = key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "faster redraw"),
	)
	intervalUpKey = key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "slower redraw"),
	)
)
