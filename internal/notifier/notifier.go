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

// Package notifier delivers batches of registry deltas to listeners on a
// dedicated dispatch loop. Batches are delivered in the order they are
// queued and a batch reaches every listener before the next one starts.
package notifier

import (
	"context"
	"slices"
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/extreg/errors"
	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/internal/metric"
	"github.com/tochemey/extreg/log"
)

const queueHint = 64

// Deliver receives the deltas of one batch matching a listener's namespace filter
type Deliver func(deltas []*extension.Delta)

type subscription struct {
	key       any
	namespace string
	deliver   Deliver
}

// stop is queued by Close behind the pending batches
type stop struct{}

// Notifier fans delta batches out to the subscribed listeners
type Notifier struct {
	logger   log.Logger
	recorder *metric.Recorder

	queue *queue.Queue
	done  chan struct{}

	mu            sync.RWMutex
	subscriptions []*subscription

	closed    *atomic.Bool
	closeOnce sync.Once
}

// New creates a Notifier and starts its dispatch loop
func New(logger log.Logger, recorder *metric.Recorder) *Notifier {
	if logger == nil {
		logger = log.DiscardLogger
	}
	n := &Notifier{
		logger:   logger,
		recorder: recorder,
		queue:    queue.New(queueHint),
		done:     make(chan struct{}),
		closed:   atomic.NewBool(false),
	}
	go n.dispatch()
	return n
}

// Subscribe registers deliver under key. An empty namespace receives every delta.
// Subscribing an already known key replaces its namespace filter and callback
// while keeping its position in the delivery order.
func (n *Notifier) Subscribe(key any, namespace string, deliver Deliver) {
	if key == nil || deliver == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	sub := &subscription{key: key, namespace: namespace, deliver: deliver}
	if i := n.indexOf(key); i >= 0 {
		n.subscriptions = slices.Clone(n.subscriptions)
		n.subscriptions[i] = sub
		return
	}
	n.subscriptions = append(slices.Clip(n.subscriptions), sub)
}

// Unsubscribe removes the subscription registered under key.
// Batches already being delivered may still reach it.
func (n *Notifier) Unsubscribe(key any) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := n.indexOf(key)
	if i < 0 {
		return false
	}
	n.subscriptions = slices.Delete(slices.Clone(n.subscriptions), i, i+1)
	return true
}

// Subscribers returns the number of subscriptions
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscriptions)
}

// Notify queues a batch for delivery and returns immediately.
// It returns false when the batch is empty or the notifier is closed.
func (n *Notifier) Notify(deltas []*extension.Delta) bool {
	if len(deltas) == 0 || n.closed.Load() {
		return false
	}
	if err := n.queue.Put(deltas); err != nil {
		n.logger.Warnf("failed to queue a batch of %d deltas: %v", len(deltas), err)
		return false
	}
	return true
}

// Close stops accepting batches, waits for the queued ones to be delivered and
// releases the dispatch loop. It must not be called from a listener.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		n.closed.Store(true)
		if err := n.queue.Put(stop{}); err != nil {
			n.queue.Dispose()
		}
		<-n.done
		n.queue.Dispose()

		n.mu.Lock()
		n.subscriptions = nil
		n.mu.Unlock()
	})
}

func (n *Notifier) dispatch() {
	defer close(n.done)
	for {
		items, err := n.queue.Get(1)
		if err != nil {
			// disposed
			return
		}
		for _, item := range items {
			switch batch := item.(type) {
			case stop:
				return
			case []*extension.Delta:
				n.deliver(batch)
			}
		}
	}
}

func (n *Notifier) deliver(batch []*extension.Delta) {
	n.mu.RLock()
	subscriptions := n.subscriptions
	n.mu.RUnlock()

	for _, sub := range subscriptions {
		deltas := filter(batch, sub.namespace)
		if len(deltas) == 0 {
			continue
		}
		if n.invoke(sub, deltas) {
			n.recorder.Delivered(context.Background(), len(deltas))
		}
	}
}

// invoke calls the listener and isolates its panic from the other listeners
func (n *Notifier) invoke(sub *subscription, deltas []*extension.Delta) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			n.recorder.ListenerFailed(context.Background())
			n.logger.Errorf("registry listener %T failed: %v", sub.key, gerrors.Recovered(r))
		}
	}()
	sub.deliver(deltas)
	return true
}

func (n *Notifier) indexOf(key any) int {
	return slices.IndexFunc(n.subscriptions, func(sub *subscription) bool {
		return sub.key == key
	})
}

func filter(batch []*extension.Delta, namespace string) []*extension.Delta {
	if namespace == "" {
		return slices.Clone(batch)
	}
	out := make([]*extension.Delta, 0, len(batch))
	for _, delta := range batch {
		if delta.Namespace() == namespace {
			out = append(out, delta)
		}
	}
	return out
}
