// Package memory provides the default, single-instance verification-code
// store: a mutex-guarded map with a periodic sweep reclaiming expired entries.
// A process restart discards all pending verifications; deployments that need
// to survive restarts or run multiple instances use the Redis backend instead.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

const defaultSweepInterval = 5 * time.Minute

// CodeStore implements ports.CodeStore in process memory.
type CodeStore struct {
	mu      sync.Mutex
	entries map[string]*domain.VerificationEntry

	sweepInterval time.Duration
	log           zerolog.Logger
}

// NewCodeStore creates an empty store. If sweepInterval <= 0 the default of
// five minutes is used.
func NewCodeStore(sweepInterval time.Duration, log zerolog.Logger) *CodeStore {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	return &CodeStore{
		entries:       make(map[string]*domain.VerificationEntry),
		sweepInterval: sweepInterval,
		log:           log,
	}
}

func (s *CodeStore) Get(_ context.Context, email string) (*domain.VerificationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}
	clone := *entry
	return &clone, nil
}

func (s *CodeStore) Set(_ context.Context, email string, entry *domain.VerificationEntry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *entry
	s.entries[email] = &clone
	return nil
}

func (s *CodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
	return nil
}

// StartSweeper launches the background sweep. It stops when ctx is cancelled.
// The sweep only reclaims memory; expired entries are already rejected on read.
func (s *CodeStore) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.sweep(time.Now()); n > 0 {
					s.log.Debug().Int("expired", n).Msg("verification code sweep")
				}
			}
		}
	}()
}

func (s *CodeStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}
