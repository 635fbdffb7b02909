package services

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/storage"
)

// MediaLister is the local store surface the sweeper needs.
type MediaLister interface {
	Entries(ctx context.Context) ([]storage.Entry, error)
	Remove(ctx context.Context, name string) error
}

// Sweeper periodically removes files from the media directory that no Photo
// references. The catalog is authoritative; the grace period keeps it from
// racing an upload whose record has not been inserted yet.
type Sweeper struct {
	store    MediaLister
	photos   PhotoRepo
	interval time.Duration
	grace    time.Duration
	log      *zap.SugaredLogger
}

func NewSweeper(store MediaLister, photos PhotoRepo, interval, grace time.Duration, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{store: store, photos: photos, interval: interval, grace: grace, log: log}
}

// Run loops until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if err != nil {
				s.log.Warnw("orphan sweep failed", "error", err)
			} else if removed > 0 {
				s.log.Infow("orphan sweep done", "removed", removed)
			}
		}
	}
}

// Sweep runs one pass and reports how many files were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	photos, err := s.photos.List(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(photos)*2)
	for _, p := range photos {
		if p.ImageURL != "" {
			referenced[path.Base(p.ImageURL)] = struct{}{}
		}
		if p.ThumbURL != "" {
			referenced[path.Base(p.ThumbURL)] = struct{}{}
		}
	}

	entries, err := s.store.Entries(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-s.grace)
	removed := 0
	for _, e := range entries {
		if _, ok := referenced[e.Name]; ok {
			continue
		}
		if e.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Remove(ctx, e.Name); err != nil {
			s.log.Warnw("could not remove orphan", "file", e.Name, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
