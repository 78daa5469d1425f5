// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Remote fetches bank metadata from GET {base}/api/banks/{id}.
// Banks it has fetched successfully are remembered and listed by Banks.
type Remote struct {
	baseURL string
	client  *http.Client
	seen    memo
}

// NewRemote returns a catalog backed by the bank API at baseURL. A nil
// client means http.DefaultClient.
func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (r *Remote) Lookup(ctx context.Context, id string) (Bank, error) {
	endpoint := r.baseURL + "/api/banks/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Bank{}, fmt.Errorf("building bank request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Bank{}, fmt.Errorf("fetching bank %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Bank{}, fmt.Errorf("%w: %s", ErrBankNotFound, id)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Bank{}, fmt.Errorf("fetching bank %s: unexpected status %s", id, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Bank{}, fmt.Errorf("reading bank %s: %w", id, err)
	}

	var doc bankDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return Bank{}, fmt.Errorf("%w: %w", ErrInvalidBankData, err)
	}

	b := doc.bank()
	if b.ID == "" {
		b.ID = id
	}
	if b.ID != id {
		return Bank{}, fmt.Errorf("%w: asked for %s, got %s", ErrInvalidBankData, id, b.ID)
	}

	r.seen.put(b)
	return b.Clone(), nil
}

func (r *Remote) Banks() []Bank {
	return r.seen.list()
}

// bankDocument is the JSON shape served by the bank API.
type bankDocument struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Samples     orderedSamples `json:"samples"`
}

type sampleDocument struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

func (d bankDocument) bank() Bank {
	return Bank{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Samples:     []Sample(d.Samples),
	}
}

// orderedSamples decodes the samples object keeping document key order,
// which is the order samples load in.
type orderedSamples []Sample

func (o *orderedSamples) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("samples must be an object, got %v", tok)
	}

	var out []Sample
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected sample key %v", tok)
		}

		var doc sampleDocument
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("sample %s: %w", key, err)
		}

		s := Sample{Key: key, Path: doc.Path, Type: doc.Type, Category: doc.Category, Name: doc.Name}
		// duplicate keys: last one wins, first position kept
		if i, dup := seen[key]; dup {
			out[i] = s
			continue
		}
		seen[key] = len(out)
		out = append(out, s)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}
