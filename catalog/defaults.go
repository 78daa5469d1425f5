// SPDX-License-Identifier: EPL-2.0

package catalog

// Factory bank ids.
const (
	TR808     = "tr-808"
	TR909     = "tr-909"
	MPC2000XL = "mpc-2000xl"
)

// Default returns the factory banks shipped with the machine.
func Default() *Static {
	return NewStatic(
		Bank{
			ID:          TR808,
			Name:        "TR-808",
			Description: "Classic Roland TR-808 drum machine samples",
			Samples: []Sample{
				drum("kick", "Kick", "/samples/808/kick.wav"),
				drum("snare", "Snare", "/samples/808/snare.wav"),
				drum("hihat-closed", "Closed Hi-Hat", "/samples/808/hihat-closed.wav"),
				drum("hihat-open", "Open Hi-Hat", "/samples/808/hihat-open.wav"),
			},
		},
		Bank{
			ID:          TR909,
			Name:        "TR-909",
			Description: "Classic Roland TR-909 drum machine samples",
			Samples: []Sample{
				drum("kick", "Kick", "/samples/909/kick.wav"),
				drum("snare", "Snare", "/samples/909/snare.wav"),
				drum("hihat-closed", "Closed Hi-Hat", "/samples/909/hihat-closed.wav"),
				drum("hihat-open", "Open Hi-Hat", "/samples/909/hihat-open.wav"),
			},
		},
		Bank{
			ID:          MPC2000XL,
			Name:        "MPC2000XL",
			Description: "Original MPC2000XL factory sound bank",
			Samples: []Sample{
				drum("kick-1", "Kick 1", "/samples/mpc2000xl/kick-1.wav"),
				drum("kick-2", "Kick 2", "/samples/mpc2000xl/kick-2.wav"),
				drum("snare-1", "Snare 1", "/samples/mpc2000xl/snare-1.wav"),
				drum("snare-2", "Snare 2", "/samples/mpc2000xl/snare-2.wav"),
			},
		},
	)
}

func drum(key, name, path string) Sample {
	return Sample{Key: key, Path: path, Type: "wav", Category: "drums", Name: name}
}
