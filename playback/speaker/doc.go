// SPDX-License-Identifier: EPL-2.0

// Package speaker streams an audio.Source to the sound card through oto.
package speaker
