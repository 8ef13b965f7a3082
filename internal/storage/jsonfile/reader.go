// Package jsonfile reads a destination catalog from a JSON document, either
// a bare array of destinations or {"destinations": [...]}.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"trip_budget/internal/domain"
)

type Reader struct{ path string }

func New(path string) *Reader { return &Reader{path: path} }

func (r *Reader) ListDestinations(ctx context.Context) ([]domain.DestinationRecord, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

func Decode(b []byte) ([]domain.DestinationRecord, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}
	if b[0] == '[' {
		var out []domain.DestinationRecord
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return out, nil
	}
	var doc struct {
		Destinations []domain.DestinationRecord `json:"destinations"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.Destinations, nil
}
