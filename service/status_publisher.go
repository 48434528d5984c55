package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// StatusPublisher mirrors the registry status to an external cache (redis) and reports serving health.
// It only reads the registry; it never polls render nodes. Both cache and health are optional.
type StatusPublisher struct {
	registry interfaces.NodeRegistry
	cache    interfaces.Cache[domain.NodeStatus]
	health   interfaces.HealthReporter
	ttl      time.Duration
	logger   log.Logger

	mu        sync.Mutex
	published map[string]struct{}
	// adopted is set once records left by an earlier run have been listed.
	adopted bool
}

// NewStatusPublisher creates a publisher. Panics on nil registry or logger; cache and health may be nil.
//
// Parameters: ttl is the lifetime of each mirrored record, so a stopped manager leaves no stale entries.
//
// Called from cmd/main when REDIS_ADDR or SERVICE_PORT_GRPC is configured.
func NewStatusPublisher(
	registry interfaces.NodeRegistry,
	cache interfaces.Cache[domain.NodeStatus],
	health interfaces.HealthReporter,
	ttl time.Duration,
	logger log.Logger,
) *StatusPublisher {
	return &StatusPublisher{
		registry:  helpers.NilPanic(registry, "service.status_publisher.go: registry is required"),
		cache:     cache,
		health:    health,
		ttl:       ttl,
		logger:    log.With(helpers.NilPanic(logger, "service.status_publisher.go: logger is required"), "component", "status_publisher"),
		published: make(map[string]struct{}),
	}
}

// Publish writes one record per known node, deletes records of nodes that disappeared since the last
// call and updates the health status. It keeps going after a cache error and returns the first one.
// The first call also deletes records of unknown nodes already present in the cache.
func (p *StatusPublisher) Publish(ctx context.Context) error {
	statuses := p.registry.Status()

	if p.health != nil {
		serving := false
		for _, st := range statuses {
			if st.Classification == domain.ClassificationActive {
				serving = true
				break
			}
		}
		p.health.SetServing(serving)
	}
	if p.cache == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if !p.adopted {
		leftovers, err := p.cache.ListAllValues(ctx)
		switch {
		case err == nil:
			for _, st := range leftovers {
				p.published[st.ID] = struct{}{}
			}
			p.adopted = true
		case IsEntityNotFoundError(err):
			p.adopted = true
		default:
			keep(fmt.Errorf("list mirrored statuses: %w", err))
		}
	}
	current := make(map[string]struct{}, len(statuses))
	for _, st := range statuses {
		current[st.ID] = struct{}{}
		if err := p.cache.WriteValue(ctx, st.ID, st, int(p.ttl.Milliseconds())); err != nil {
			keep(fmt.Errorf("publish status of %s: %w", st.ID, err))
		}
	}
	for id := range p.published {
		if _, ok := current[id]; ok {
			continue
		}
		if err := p.cache.DeleteValue(ctx, id); err != nil {
			keep(fmt.Errorf("delete status of %s: %w", id, err))
			current[id] = struct{}{}
		}
	}
	p.published = current
	return firstErr
}

// Run publishes every interval until ctx is done. Errors are logged.
func (p *StatusPublisher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := p.Publish(ctx); err != nil {
			level.Warn(p.logger).Log("msg", "status publish failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
