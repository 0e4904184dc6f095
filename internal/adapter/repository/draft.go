package repository

import (
	"log/slog"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/store"
)

// DraftRepo keeps the in-progress profile between runs.
type DraftRepo struct {
	store *store.Store
	log   *slog.Logger
}

func NewDraftRepo(st *store.Store, logger *slog.Logger) *DraftRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftRepo{store: st, log: logger}
}

func (r *DraftRepo) Save(p domain.Profile) error {
	m, err := toMap(p)
	if err != nil {
		return err
	}
	return r.store.Save(m)
}

// Load returns the saved draft; ok is false when there is none or it cannot
// be read.
func (r *DraftRepo) Load() (p domain.Profile, ok bool) {
	m := r.store.LoadObject()
	if len(m) == 0 {
		return domain.Profile{}, false
	}
	if err := fromMap(m, &p); err != nil {
		r.log.Warn("draft document unreadable, starting empty", "error", err)
		return domain.Profile{}, false
	}
	return p, true
}
