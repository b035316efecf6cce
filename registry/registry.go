// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package registry exposes the dynamic contribution registry: a namespace
// partitioned store of extension points and extensions that components add
// and withdraw at run time, guarded by capability tokens, persisted through a
// cache and observed by listeners.
package registry

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/extreg/cache"
	gerrors "github.com/tochemey/extreg/errors"
	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/internal/access"
	imetric "github.com/tochemey/extreg/internal/metric"
	"github.com/tochemey/extreg/internal/notifier"
	"github.com/tochemey/extreg/internal/store"
	"github.com/tochemey/extreg/log"
)

// Registry is the dynamic contribution registry.
//
// Mutations are serialized by a single writer lock which also orders the
// notification batches, so listeners observe the mutations in the order they
// happened. Queries never block on listeners and see either the state before or
// after a contribution, never a partial merge.
type Registry struct {
	store    *store.Store
	access   *access.Controller[Token]
	notifier *notifier.Notifier
	cache    *cache.Cache
	strategy Strategy

	logger        log.Logger
	meter         metric.Meter
	recorder      *imetric.Recorder
	cacheOptions  []cache.Option
	cacheReadOnly bool

	writeMu  sync.Mutex
	running  *atomic.Bool
	stopOnce sync.Once
}

// New creates a running Registry.
//
// masterToken authorizes every mutation and Stop. userToken, when set, only
// authorizes dynamic contributions (Persist false). A nil masterToken leaves the
// registry open to any caller. The cached contributions returned by the strategy
// storage are admitted before New returns, without notification; a missing or
// corrupt cache only yields an empty registry.
func New(strategy Strategy, masterToken, userToken *Token, opts ...Option) *Registry {
	if strategy == nil {
		strategy = DefaultStrategy()
	}

	r := &Registry{
		store:    store.New(),
		access:   access.New(masterToken, userToken),
		strategy: strategy,
		logger:   log.DiscardLogger,
		running:  atomic.NewBool(true),
	}

	for _, opt := range opts {
		opt.Apply(r)
	}

	r.logger = r.logger.With("component", "registry")
	if r.meter != nil {
		registryMetric, err := imetric.NewRegistryMetric(r.meter)
		if err != nil {
			r.logger.Warnf("registry metrics disabled: %v", err)
		}
		r.recorder = imetric.NewRecorder(registryMetric)
	}

	r.notifier = notifier.New(r.logger, r.recorder)

	if storage := strategy.Storage(); storage != nil {
		r.cache = cache.New(storage, append([]cache.Option{cache.WithLogger(r.logger)}, r.cacheOptions...)...)
		r.restore()
	}

	return r
}

// AddContribution admits a contribution. It returns false, with a nil error, when
// the contribution is malformed or collides with an existing unique id; the
// store is then left unchanged. Token failures return errors.ErrUnauthorized and
// a stopped registry returns errors.ErrRegistryStopped.
func (r *Registry) AddContribution(contribution *extension.Contribution, token *Token) (bool, error) {
	persist := contribution != nil && contribution.Persist
	if err := r.access.CheckMutation(token, persist); err != nil {
		return false, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if !r.running.Load() {
		return false, gerrors.ErrRegistryStopped
	}

	deltas, err := r.store.Add(contribution)
	if err != nil {
		r.reject(contributorOf(contribution), err)
		return false, nil
	}

	r.recorder.Added(context.Background(), contribution.Contributor.ID)
	r.notifier.Notify(deltas)
	return true, nil
}

// RemoveContribution withdraws every extension point and extension owned by the
// contributor. Extensions of other contributors linked to a removed point go
// back to the orphan set. It returns false when the contributor owns nothing.
// A contributor owning persisted contributions can only be removed with the master token.
func (r *Registry) RemoveContribution(contributorID string, token *Token) (bool, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	// ownership only changes under the writer lock
	if err := r.access.CheckMutation(token, r.store.HasPersisted(contributorID)); err != nil {
		return false, err
	}

	if !r.running.Load() {
		return false, gerrors.ErrRegistryStopped
	}

	deltas, ok := r.store.Remove(contributorID)
	if !ok {
		return false, nil
	}

	r.recorder.Removed(context.Background(), contributorID)
	r.notifier.Notify(deltas)
	return true, nil
}

// Stop saves the persisted contributions, delivers the pending notifications,
// closes the cache and discards the registry content. Only the master token can
// stop the registry. Stop is idempotent and must not be called from a Listener.
func (r *Registry) Stop(token *Token) error {
	if err := r.access.CheckStop(token); err != nil {
		return err
	}
	r.stopOnce.Do(r.shutdown)
	return nil
}

// IsRunning returns true until Stop succeeds
func (r *Registry) IsRunning() bool {
	return r.running.Load()
}

// AddListener registers a listener for the deltas of the extension points of
// namespace. An empty namespace listens to every change. Registering a listener
// again replaces its namespace.
func (r *Registry) AddListener(listener Listener, namespace string) {
	if listener == nil || !r.running.Load() {
		return
	}
	r.notifier.Subscribe(listener, namespace, func(deltas []*extension.Delta) {
		listener.RegistryChanged(newChangeEvent(deltas))
	})
}

// RemoveListener unregisters a listener. Batches already being delivered may still reach it.
func (r *Registry) RemoveListener(listener Listener) {
	if listener == nil {
		return
	}
	r.notifier.Unsubscribe(listener)
}

func (r *Registry) shutdown() {
	r.writeMu.Lock()
	r.running.Store(false)

	var err error
	if r.cache != nil {
		if !r.cacheReadOnly {
			err = multierr.Append(err, r.cache.Save(context.Background(), r.store.Contributions(true)))
		}
		err = multierr.Append(err, r.cache.Close())
	}
	r.writeMu.Unlock()

	r.notifier.Close()
	r.store.Reset()

	if err != nil {
		r.logger.Errorf("registry stopped with errors: %v", err)
		return
	}
	r.logger.Info("registry stopped")
}

// restore admits the fresh cached contributions
func (r *Registry) restore() {
	contributions := r.cache.Load(context.Background(), r.strategy.IsFresh)
	var restored int
	for _, contribution := range contributions {
		if _, err := r.store.Add(contribution); err != nil {
			r.reject(contribution.Contributor.ID, err)
			continue
		}
		restored++
	}
	if restored > 0 {
		r.logger.Infof("restored %d cached contributions", restored)
	}
}

func (r *Registry) reject(contributor string, err error) {
	var conflict *gerrors.ConflictError
	if errors.As(err, &conflict) {
		r.recorder.Rejected(context.Background(), contributor, "conflict")
		r.logger.Warnf("contribution rejected: %v", conflict)
		return
	}
	r.recorder.Rejected(context.Background(), contributor, "invalid")
	r.logger.Warnf("contribution rejected: %v", err)
}

func contributorOf(contribution *extension.Contribution) string {
	if contribution == nil {
		return ""
	}
	return contribution.Contributor.ID
}
