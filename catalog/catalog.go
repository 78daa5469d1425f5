// SPDX-License-Identifier: EPL-2.0

// Package catalog describes sound banks: which samples a bank holds, where
// they live and how they are labelled.
package catalog

import (
	"context"
	"sort"
	"sync"
)

// Sample is one entry of a bank. Key is unique within the bank and becomes
// the suffix of the loaded sample id ("<bankId>-<key>").
type Sample struct {
	Key      string
	Path     string
	Type     string
	Category string
	Name     string
}

// Bank is a named, ordered collection of samples.
type Bank struct {
	ID          string
	Name        string
	Description string
	Samples     []Sample
}

// Clone returns a deep copy of b.
func (b Bank) Clone() Bank {
	b.Samples = append([]Sample(nil), b.Samples...)
	return b
}

// Catalog resolves bank ids to bank definitions.
type Catalog interface {
	// Lookup returns the bank with the given id or ErrBankNotFound.
	Lookup(ctx context.Context, id string) (Bank, error)
	// Banks lists every bank currently known, sorted by id.
	Banks() []Bank
}

// Static is an immutable in-memory catalog.
type Static struct {
	banks map[string]Bank
}

// NewStatic builds a catalog from banks. Later banks replace earlier ones
// with the same id.
func NewStatic(banks ...Bank) *Static {
	s := &Static{banks: make(map[string]Bank, len(banks))}
	for _, b := range banks {
		s.banks[b.ID] = b.Clone()
	}
	return s
}

func (s *Static) Lookup(_ context.Context, id string) (Bank, error) {
	b, ok := s.banks[id]
	if !ok {
		return Bank{}, ErrBankNotFound
	}
	return b.Clone(), nil
}

func (s *Static) Banks() []Bank {
	return sortedBanks(s.banks)
}

// memo is a concurrency safe bank set shared by catalogs that learn banks
// over time.
type memo struct {
	mtx   sync.RWMutex
	banks map[string]Bank
}

func (m *memo) get(id string) (Bank, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	b, ok := m.banks[id]
	if !ok {
		return Bank{}, false
	}
	return b.Clone(), true
}

func (m *memo) put(b Bank) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.banks == nil {
		m.banks = make(map[string]Bank)
	}
	m.banks[b.ID] = b.Clone()
}

func (m *memo) list() []Bank {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	return sortedBanks(m.banks)
}

func sortedBanks(banks map[string]Bank) []Bank {
	out := make([]Bank, 0, len(banks))
	for _, b := range banks {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
