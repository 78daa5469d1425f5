// SPDX-License-Identifier: EPL-2.0

package bank

import "github.com/TerminallyLazy/mpc2000xl/audio"

// Edit holds the per-sample playback edits a pad applies.
// Start and End are frame offsets; Tune is in semitones and Volume in 0..100.
type Edit struct {
	Start  int
	End    int
	Loop   int
	Tune   float64
	Volume float64
}

// Asset is a decoded sample owned by the loader.
type Asset struct {
	ID       string
	BankID   string
	Key      string
	Name     string
	Category string
	Buffer   *audio.Buffer
	// Size is the byte length of the fetched payload, the unit the memory
	// budget is accounted in.
	Size int64
	Edit Edit
}

// SampleID joins a bank id and a sample key into a loaded sample id.
func SampleID(bankID, key string) string {
	return bankID + "-" + key
}

func defaultEdit(buf *audio.Buffer) Edit {
	return Edit{Start: 0, End: buf.Len(), Loop: 0, Tune: 0, Volume: 100}
}
