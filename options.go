// SPDX-License-Identifier: EPL-2.0

package mpc2000xl

import (
	"net/http"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/bank"
	"github.com/TerminallyLazy/mpc2000xl/catalog"
)

// Option replaces a collaborator New would otherwise build from the config.
type Option func(*options)

type options struct {
	catalog  catalog.Catalog
	fetcher  bank.Fetcher
	client   *http.Client
	decoders *audio.Registry
}

// WithCatalog uses cat instead of the configured catalog.
func WithCatalog(cat catalog.Catalog) Option {
	return func(o *options) { o.catalog = cat }
}

// WithFetcher uses f to retrieve sample payloads.
func WithFetcher(f bank.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithHTTPClient sets the client for sample and catalog requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithDecoders sets the decoder registry shared by the loader and the
// playback engine.
func WithDecoders(r *audio.Registry) Option {
	return func(o *options) { o.decoders = r }
}
