// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/catalog"
	"github.com/TerminallyLazy/mpc2000xl/formats"
)

const bytesPerMB = 1024 * 1024

// Registrar is the part of the playback engine the loader drives.
type Registrar interface {
	Register(id string, buf *audio.Buffer) error
	Dispose(id string)
}

// Loader fetches sound banks, decodes their samples and keeps the total
// payload size within a memory budget.
//
// LoadBank and UnloadBank are serialised; the observers may be called at
// any time, including while a load is in flight.
type Loader struct {
	catalog     catalog.Catalog
	fetcher     Fetcher
	decoders    *audio.Registry
	player      Registrar
	maxMemoryMB int

	// op serialises mutating operations.
	op sync.Mutex

	mtx    sync.RWMutex
	assets map[string]*Asset
	loaded map[string]struct{}
	usage  int64
}

// NewLoader returns a loader resolving banks through cat and samples through
// fetcher. A nil decoders registry means formats.NewRegistry(); a nil player
// keeps decoded samples in the loader only.
func NewLoader(cat catalog.Catalog, fetcher Fetcher, decoders *audio.Registry, player Registrar, opts ...Option) *Loader {
	if decoders == nil {
		decoders = formats.NewRegistry()
	}

	l := &Loader{
		catalog:     cat,
		fetcher:     fetcher,
		decoders:    decoders,
		player:      player,
		maxMemoryMB: DefaultMaxMemoryMB,
		assets:      make(map[string]*Asset),
		loaded:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadBank loads every sample of the bank in catalog order. It stops at the
// first failure; samples committed before the failure stay loaded and
// counted, so a failed bank can still be unloaded.
func (l *Loader) LoadBank(ctx context.Context, bankID string, opts ...LoadOption) error {
	l.op.Lock()
	defer l.op.Unlock()

	o := loadOptions{maxMemoryMB: l.maxMemoryMB}
	for _, opt := range opts {
		opt(&o)
	}
	limit := int64(o.maxMemoryMB) * bytesPerMB

	ctx = logger.WithContext(ctx)
	opID := uuid.NewString()

	b, err := l.catalog.Lookup(ctx, bankID)
	if err != nil {
		logger.Wf(ctx, "bank load op=%v bank=%v lookup err %+v", opID, bankID, err)
		if errors.Is(err, catalog.ErrBankNotFound) {
			return fmt.Errorf("%w: %s", ErrBankNotFound, bankID)
		}
		return fmt.Errorf("%w: %s: %w", ErrBankNotFound, bankID, err)
	}

	total := len(b.Samples)
	logger.Tf(ctx, "bank load op=%v bank=%v samples=%v limit=%vMB usage=%v",
		opID, bankID, total, o.maxMemoryMB, l.CurrentMemoryUsage())

	for i, s := range b.Samples {
		if err := l.loadSample(ctx, b, s, limit); err != nil {
			logger.Ef(ctx, "bank load op=%v bank=%v sample=%v loaded=%v/%v err %+v",
				opID, bankID, s.Key, i, total, err)
			return err
		}

		logger.Tf(ctx, "bank load op=%v bank=%v sample=%v loaded=%v/%v usage=%v",
			opID, bankID, s.Key, i+1, total, l.CurrentMemoryUsage())

		if o.progress != nil {
			o.progress(i+1, total)
		}
	}

	l.mtx.Lock()
	l.loaded[bankID] = struct{}{}
	l.mtx.Unlock()

	logger.Tf(ctx, "bank load op=%v bank=%v done usage=%v", opID, bankID, l.CurrentMemoryUsage())
	return nil
}

func (l *Loader) loadSample(ctx context.Context, b catalog.Bank, s catalog.Sample, limit int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("loading %s/%s: %w", b.ID, s.Key, err)
	}

	raw, err := l.fetcher.Fetch(ctx, s.Path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("loading %s/%s: %w", b.ID, s.Key, ctxErr)
		}
		return fmt.Errorf("%w: %s/%s: %w", ErrSampleFetchFailed, b.ID, s.Key, err)
	}

	id := SampleID(b.ID, s.Key)
	size := int64(len(raw))

	// reloading an id releases its previous bytes
	l.mtx.RLock()
	var replaced int64
	if prev, ok := l.assets[id]; ok {
		replaced = prev.Size
	}
	usage := l.usage
	l.mtx.RUnlock()

	if usage-replaced+size > limit {
		return fmt.Errorf("%w: %s/%s needs %d bytes, %d of %d in use",
			ErrMemoryLimitExceeded, b.ID, s.Key, size, usage-replaced, limit)
	}

	buf, err := formats.Decode(l.decoders, raw)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %w", ErrDecodeFailure, b.ID, s.Key, err)
	}

	if l.player != nil {
		if err := l.player.Register(id, buf); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRegisterFailed, id, err)
		}
	}

	asset := &Asset{
		ID:       id,
		BankID:   b.ID,
		Key:      s.Key,
		Name:     s.Name,
		Category: s.Category,
		Buffer:   buf,
		Size:     size,
		Edit:     defaultEdit(buf),
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	if prev, ok := l.assets[id]; ok {
		l.usage -= prev.Size
	}
	l.assets[id] = asset
	l.usage += size
	// partially loaded banks are still unloadable
	l.loaded[b.ID] = struct{}{}

	return nil
}

// UnloadBank releases every sample attributed to the bank and disposes
// their playback resources. Unknown or unloaded banks are a no-op.
func (l *Loader) UnloadBank(bankID string) {
	l.op.Lock()
	defer l.op.Unlock()

	l.mtx.Lock()
	if _, ok := l.loaded[bankID]; !ok {
		l.mtx.Unlock()
		return
	}

	var ids []string
	for id, a := range l.assets {
		if a.BankID != bankID {
			continue
		}
		l.usage -= a.Size
		delete(l.assets, id)
		ids = append(ids, id)
	}
	delete(l.loaded, bankID)
	l.mtx.Unlock()

	if l.player != nil {
		for _, id := range ids {
			l.player.Dispose(id)
		}
	}
}

// CurrentMemoryUsage returns the summed payload size of all loaded samples.
func (l *Loader) CurrentMemoryUsage() int64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.usage
}

// LoadedBanks returns the ids of banks with at least one committed load, sorted.
func (l *Loader) LoadedBanks() []string {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	out := make([]string, 0, len(l.loaded))
	for id := range l.loaded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AvailableBanks lists the banks the catalog knows about.
func (l *Loader) AvailableBanks() []catalog.Bank {
	return l.catalog.Banks()
}

// Sample returns a copy of the loaded asset with the given id.
func (l *Loader) Sample(id string) (Asset, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	a, ok := l.assets[id]
	if !ok {
		return Asset{}, false
	}
	return *a, true
}

// Samples returns the bank's loaded assets sorted by id.
func (l *Loader) Samples(bankID string) []Asset {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	var out []Asset
	for _, a := range l.assets {
		if a.BankID == bankID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetEdit replaces the playback edits of a loaded sample.
func (l *Loader) SetEdit(id string, e Edit) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	a, ok := l.assets[id]
	if !ok {
		return false
	}
	a.Edit = e
	return true
}
