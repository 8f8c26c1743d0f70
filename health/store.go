package health

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/asodi/tracker/localstate"
)

// healthKey is read, never written; a miss still proves the store answers.
const healthKey = "__health_check__"

// StoreChecker checks the local state store with a read.
type StoreChecker struct {
	checkLoop
	store localstate.Store
}

func NewStoreChecker(store localstate.Store, log zerolog.Logger, checkTimeout time.Duration) *StoreChecker {
	s := &StoreChecker{store: store}
	s.name, s.log, s.checkTimeout = "localstate", log, checkTimeout
	s.pinger = s
	return s
}

func (s *StoreChecker) HealthPing(ctx context.Context) error {
	if _, _, err := s.store.Get(ctx, healthKey); err != nil {
		return fmt.Errorf("localstate check: %w", err)
	}
	return nil
}
