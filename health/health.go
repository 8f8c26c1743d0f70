// Package health tracks whether the ASODI API and the local state store are
// reachable.
package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger runs one check. It returns nil when the component is healthy.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// Checker is a named component check with a cached result.
type Checker interface {
	Pinger
	Name() string
	IsHealthy() bool
	Check(ctx context.Context)
	Start(ctx context.Context, interval time.Duration)
}

// checkLoop caches the result of a Pinger, refreshed every interval.
type checkLoop struct {
	name         string
	pinger       Pinger
	healthy      atomic.Int32
	log          zerolog.Logger
	checkTimeout time.Duration
}

func (p *checkLoop) Name() string    { return p.name }
func (p *checkLoop) IsHealthy() bool { return p.healthy.Load() == 1 }

// Check runs one health ping and caches its result.
func (p *checkLoop) Check(ctx context.Context) {
	to := p.checkTimeout
	if to <= 0 {
		to = 2 * time.Second
	}
	checkCtx, cancel := context.WithTimeout(ctx, to)
	defer cancel()

	if err := p.pinger.HealthPing(checkCtx); err != nil {
		p.log.Error().Str("checker", p.name).Err(err).Msg("health check failed")
		p.healthy.Store(0)
		return
	}
	p.healthy.Store(1)
}

// Start checks immediately and then every interval until ctx ends.
func (p *checkLoop) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Service aggregates component checkers into a single health flag.
type Service struct {
	healthy atomic.Int32
	deps    []Checker
	log     zerolog.Logger
}

func NewService(log zerolog.Logger, deps ...Checker) *Service {
	return &Service{deps: deps, log: log}
}

// IsHealthy returns the cached service health.
func (s *Service) IsHealthy() bool { return s.healthy.Load() == 1 }

// Components reports the cached health of each dependency by name.
func (s *Service) Components() map[string]bool {
	out := make(map[string]bool, len(s.deps))
	for _, d := range s.deps {
		out[d.Name()] = d.IsHealthy()
	}
	return out
}

// Start checks every dependency, then evaluates the aggregate flag, once
// right away and again each interval until ctx ends. IsHealthy reflects real
// check results from the first evaluation on.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := int32(-1)
	eval := func() {
		s.checkAll(ctx)
		cur := int32(1)
		for _, d := range s.deps {
			if !d.IsHealthy() {
				cur = 0
			}
		}
		s.healthy.Store(cur)
		if cur != prev {
			if cur == 1 {
				s.log.Info().Msg("service health: UP")
			} else {
				s.log.Warn().Msg("service health: DOWN")
			}
			prev = cur
		}
	}

	eval()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eval()
		}
	}
}

// checkAll runs one check per dependency concurrently and waits for all.
func (s *Service) checkAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, d := range s.deps {
		wg.Add(1)
		go func(d Checker) {
			defer wg.Done()
			d.Check(ctx)
		}(d)
	}
	wg.Wait()
}

// PingAll checks every checker once and returns the per-component errors
// (nil entries are healthy).
func PingAll(ctx context.Context, checkers ...Checker) map[string]error {
	out := make(map[string]error, len(checkers))
	for _, c := range checkers {
		out[c.Name()] = c.HealthPing(ctx)
	}
	return out
}
