// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams using github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes natively to float32, so samples are passed through
// unscaled with the stream's own channel count and sample rate.
package vorbis
