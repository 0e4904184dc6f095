package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/model"
	"portfolio-generator/internal/store"
)

var ErrNotFound = errors.New("portfolio not found")

// Registry is the list of finalized portfolios, keyed by email.
//
// Writes are whole-file rewrites without locking: two processes sharing the
// file race and the last writer wins.
type Registry struct {
	store *store.Store
	log   *slog.Logger
}

func NewRegistry(st *store.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: st, log: logger}
}

// Upsert replaces, in place, the first entry with the same non-empty email,
// or appends p at the end. Other entries are written back as read, including
// the ones List skips.
func (r *Registry) Upsert(p domain.Portfolio) error {
	entry, err := toMap(p)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}

	list := r.store.LoadItems()
	found := false
	if p.Email != "" {
		for i, item := range list {
			existing, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if email, _ := existing["email"].(string); email == p.Email {
				list[i] = entry
				found = true
				break
			}
		}
	}
	if !found {
		list = append(list, entry)
	}

	if err := r.store.Save(list); err != nil {
		return err
	}
	r.log.Info("portfolio registered", "email", p.Email, "replaced", found, "total", len(list))
	return nil
}

// List returns every entry in file order. Entries that do not have the
// profile layout are skipped.
func (r *Registry) List() []domain.Portfolio {
	raw := r.store.LoadItems()
	out := make([]domain.Portfolio, 0, len(raw))
	for i, item := range raw {
		if err := model.ValidateEntry(item); err != nil {
			r.log.Warn("skipping registry entry with unexpected layout", "index", i, "error", err)
			continue
		}
		m, _ := item.(map[string]interface{})
		var p domain.Portfolio
		if err := fromMap(m, &p); err != nil {
			r.log.Warn("skipping unreadable registry entry", "index", i, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Find returns the entry registered under email.
func (r *Registry) Find(email string) (domain.Portfolio, error) {
	if email != "" {
		for _, p := range r.List() {
			if p.Email == email {
				return p, nil
			}
		}
	}
	return domain.Portfolio{}, fmt.Errorf("%q: %w", email, ErrNotFound)
}

func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]interface{}, out interface{}) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
