// SPDX-License-Identifier: EPL-2.0

// Package swing delays off-beat notes of a pattern to give it shuffle.
//
// The grid is 60000/resolution milliseconds. A note-on whose grid index
// floor(time/grid) is odd moves late by grid*(percentage-50)/50; every
// other event keeps its time. Percentages at or below 50, or above 75,
// leave the pattern unchanged. The quantizer never snaps its input; Snap
// is for editors storing a percentage.
//
// Events convert to and from gomidi messages, and WriteSMF exports a
// swung pattern as a Standard MIDI File.
package swing
