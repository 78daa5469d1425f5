// SPDX-License-Identifier: EPL-2.0

package mpc2000xl

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/bank"
	"github.com/TerminallyLazy/mpc2000xl/catalog"
	"github.com/TerminallyLazy/mpc2000xl/formats"
	"github.com/TerminallyLazy/mpc2000xl/internal/config"
	"github.com/TerminallyLazy/mpc2000xl/playback"
	"github.com/TerminallyLazy/mpc2000xl/swing"
	"github.com/TerminallyLazy/mpc2000xl/timestretch"
)

// Machine owns one instance of every engine. Machines are independent of
// each other.
type Machine struct {
	catalog catalog.Catalog
	loader  *bank.Loader
	player  *playback.Engine
	stretch *timestretch.Engine

	quality timestretch.Quality

	mtx   sync.Mutex
	swing swing.Settings
}

// New builds a Machine from cfg.
func New(cfg config.Config, opts ...Option) (*Machine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	quality, err := timestretch.ParseQuality(cfg.StretchQuality)
	if err != nil {
		return nil, fmt.Errorf("stretch quality: %w", err)
	}

	if o.client == nil {
		o.client = &http.Client{Timeout: cfg.FetchTimeout}
	}
	if o.decoders == nil {
		o.decoders = formats.NewRegistry()
	}
	if o.catalog == nil {
		switch cfg.Catalog {
		case config.CatalogRemote:
			o.catalog = catalog.NewRemote(cfg.SampleBaseURL, o.client)
		default:
			o.catalog = catalog.Default()
		}
	}
	if o.fetcher == nil {
		o.fetcher = &bank.HTTPFetcher{BaseURL: cfg.SampleBaseURL, Client: o.client}
	}

	player := playback.NewEngine(o.decoders, playback.WithSampleRate(cfg.SampleRate))

	var loaderOpts []bank.Option
	if cfg.MaxMemoryMB > 0 {
		loaderOpts = append(loaderOpts, bank.WithDefaultMaxMemoryMB(cfg.MaxMemoryMB))
	}

	resolution := cfg.SwingResolution
	if resolution <= 0 {
		resolution = swing.DefaultResolution
	}

	return &Machine{
		catalog: o.catalog,
		loader:  bank.NewLoader(o.catalog, o.fetcher, o.decoders, player, loaderOpts...),
		player:  player,
		stretch: timestretch.NewEngine(),
		quality: quality,
		swing:   swing.Settings{Percentage: swing.MinPercentage, Resolution: resolution},
	}, nil
}

// Output is the master mix.
func (m *Machine) Output() audio.Source { return m.player }

// Close stops all voices and releases every sample.
func (m *Machine) Close() error {
	return m.player.Close()
}

// Sound banks

func (m *Machine) LoadBank(ctx context.Context, bankID string, opts ...bank.LoadOption) error {
	return m.loader.LoadBank(ctx, bankID, opts...)
}

func (m *Machine) UnloadBank(bankID string) {
	m.loader.UnloadBank(bankID)
}

func (m *Machine) LoadedBanks() []string { return m.loader.LoadedBanks() }

func (m *Machine) CurrentMemoryUsage() int64 { return m.loader.CurrentMemoryUsage() }

func (m *Machine) AvailableBanks() []catalog.Bank { return m.loader.AvailableBanks() }

// Asset returns a loaded bank sample.
func (m *Machine) Asset(id string) (bank.Asset, bool) { return m.loader.Sample(id) }

// EditAsset replaces the pad edits of a loaded bank sample.
func (m *Machine) EditAsset(id string, e bank.Edit) error {
	if !m.loader.SetEdit(id, e) {
		return fmt.Errorf("%w: %v", ErrSampleNotFound, id)
	}
	return nil
}

// Time stretch

// ProcessAudio stretches buf. A zero Quality in req means Standard; use
// StretchQuality for the configured default.
func (m *Machine) ProcessAudio(buf *audio.Buffer, req timestretch.Request) (*audio.Buffer, error) {
	return m.stretch.Process(buf, req)
}

func (m *Machine) Algorithms() []timestretch.Algorithm { return m.stretch.Algorithms() }

// StretchQuality is the configured default tier.
func (m *Machine) StretchQuality() timestretch.Quality { return m.quality }

// StretchAsset stretches a loaded bank sample at the configured quality and
// returns the new buffer. The asset itself is left unchanged.
func (m *Machine) StretchAsset(id string, ratio float64, algorithmIndex int) (*audio.Buffer, error) {
	a, ok := m.loader.Sample(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrSampleNotFound, id)
	}
	return m.stretch.Process(a.Buffer, timestretch.Request{
		Quality:        m.quality,
		Ratio:          ratio,
		AlgorithmIndex: algorithmIndex,
	})
}

// Swing

func (m *Machine) ApplySwing(events []swing.Event, opts swing.Options) []swing.Event {
	return swing.Apply(events, opts)
}

func (m *Machine) CalculateSwingDelay(time float64, opts swing.Options) float64 {
	return swing.Delay(time, opts)
}

// SetSwing stores the sequencer swing, snapping the percentage to a value
// the swing screen can show.
func (m *Machine) SetSwing(s swing.Settings) swing.Settings {
	s.Percentage = swing.Snap(s.Percentage)
	if s.Resolution <= 0 {
		s.Resolution = swing.DefaultResolution
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.swing = s
	return s
}

func (m *Machine) Swing() swing.Settings {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.swing
}

// SwingPattern applies the stored swing settings.
func (m *Machine) SwingPattern(events []swing.Event) []swing.Event {
	return m.Swing().Apply(events)
}

// Playback

func (m *Machine) LoadSample(id string, raw []byte) error { return m.player.LoadSample(id, raw) }

func (m *Machine) PlaySample(ctx context.Context, id string, opts ...playback.PlayOption) {
	m.player.Play(ctx, id, opts...)
}

// PlayAsset plays a loaded bank sample with its pad tune and volume.
func (m *Machine) PlayAsset(ctx context.Context, id string) {
	a, ok := m.loader.Sample(id)
	if !ok {
		return
	}
	m.player.Play(ctx, id, playback.WithTune(a.Edit.Tune), playback.WithVolume(a.Edit.Volume))
}

func (m *Machine) Sample(id string) (playback.Info, bool) { return m.player.Sample(id) }

func (m *Machine) DisposeSample(id string) { m.player.Dispose(id) }

func (m *Machine) DisposeAll() { m.player.DisposeAll() }

func (m *Machine) StartTransport(ctx context.Context) { m.player.StartTransport(ctx) }

func (m *Machine) StopTransport(ctx context.Context) { m.player.StopTransport(ctx) }

func (m *Machine) StartRecording(ctx context.Context) { m.player.StartRecording(ctx) }

func (m *Machine) StopRecording(ctx context.Context) (playback.Recording, error) {
	return m.player.StopRecording(ctx)
}
