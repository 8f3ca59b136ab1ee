// notify.go: Change notification for the Hestia configuration store
//
// Subscriptions live in an ordered registry and are dispatched synchronously
// from the mutation call path: the store captures the value at every watched
// path before applying a mutation, applies and persists it, then fires each
// listener whose value actually changed, in subscription order. A set that
// leaves the value deeply equal stays silent.
//
// Listeners run after the store releases its own lock, so a listener may
// freely read from or write to the store.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import "sync"

// ChangeCallback is invoked with the new and old values at a watched key.
// Either value may be nil when the key is absent on that side of the change.
type ChangeCallback func(newValue, oldValue interface{})

// AnyChangeCallback is invoked with the new and old effective documents
// whenever any part of the document changes.
type AnyChangeCallback func(newDoc, oldDoc map[string]interface{})

// subscription associates a watched path with a listener. The removed flag
// keeps unsubscribe idempotent and suppresses delivery to listeners
// unsubscribed while a dispatch is in flight.
type subscription struct {
	id      uint64
	keyPath []string
	cb      ChangeCallback
	removed bool
}

type anySubscription struct {
	id      uint64
	cb      AnyChangeCallback
	removed bool
}

// notifier manages the ordered subscription registry.
type notifier struct {
	mu      sync.Mutex
	subs    []*subscription
	anySubs []*anySubscription
	nextID  uint64
}

func newNotifier() *notifier {
	return &notifier{}
}

// subscribe registers a listener for a watched path and returns its
// unsubscribe handle. Multiple subscriptions on the same path are
// independent and all fire, in subscription order.
func (n *notifier) subscribe(keyPath []string, cb ChangeCallback) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := &subscription{
		id:      n.nextID,
		keyPath: keyPath,
		cb:      cb,
	}
	n.nextID++
	n.subs = append(n.subs, sub)

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		for i, s := range n.subs {
			if s.id == sub.id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				break
			}
		}
	}
}

// subscribeAny registers a whole-document listener.
func (n *notifier) subscribeAny(cb AnyChangeCallback) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := &anySubscription{
		id: n.nextID,
		cb: cb,
	}
	n.nextID++
	n.anySubs = append(n.anySubs, sub)

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		for i, s := range n.anySubs {
			if s.id == sub.id {
				n.anySubs = append(n.anySubs[:i], n.anySubs[i+1:]...)
				break
			}
		}
	}
}

// watchedValue carries a captured value together with its presence, so an
// absent key and an explicit null compare as different states.
type watchedValue struct {
	value  interface{}
	exists bool
}

// watchEntry pairs a subscription with its pre-mutation value.
type watchEntry struct {
	sub *subscription
	old watchedValue
}

// changeSnapshot holds the pre-mutation state of every watched path.
type changeSnapshot struct {
	entries []watchEntry
	oldDoc  map[string]interface{}
}

// capture records the current value at every watched path. Values are deep
// copied: mutations edit nested maps in place, and the old side of the diff
// must not alias them. The whole document is copied only when a
// whole-document listener is registered.
func (n *notifier) capture(doc map[string]interface{}) changeSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()

	snap := changeSnapshot{}

	if len(n.subs) > 0 {
		snap.entries = make([]watchEntry, 0, len(n.subs))
		for _, sub := range n.subs {
			v, ok := getNested(doc, sub.keyPath)
			if ok {
				v = copyValue(v)
			}
			snap.entries = append(snap.entries, watchEntry{sub: sub, old: watchedValue{value: v, exists: ok}})
		}
	}

	if len(n.anySubs) > 0 {
		snap.oldDoc = copyDocument(effectiveView(doc))
	}

	return snap
}

// diff compares post-mutation values against the snapshot and returns the
// pending listener invocations, in subscription order. The store fires them
// after releasing its lock. Each invocation re-checks its subscription, so a
// listener unsubscribed mid-dispatch stays silent.
func (n *notifier) diff(snap changeSnapshot, doc map[string]interface{}) []func() {
	var pending []func()

	for _, entry := range snap.entries {
		newVal, newExists := getNested(doc, entry.sub.keyPath)
		if newExists == entry.old.exists && deepEqual(newVal, entry.old.value) {
			continue
		}
		if newExists {
			newVal = copyValue(newVal)
		}

		sub, oldVal := entry.sub, entry.old.value
		captured := newVal
		pending = append(pending, func() {
			n.mu.Lock()
			removed := sub.removed
			n.mu.Unlock()
			if !removed {
				sub.cb(captured, oldVal)
			}
		})
	}

	if snap.oldDoc != nil {
		newDoc := copyDocument(effectiveView(doc))
		if !deepEqual(newDoc, snap.oldDoc) {
			oldDoc := snap.oldDoc

			n.mu.Lock()
			anySubs := append([]*anySubscription(nil), n.anySubs...)
			n.mu.Unlock()

			for _, sub := range anySubs {
				sub := sub
				pending = append(pending, func() {
					n.mu.Lock()
					removed := sub.removed
					n.mu.Unlock()
					if !removed {
						sub.cb(copyDocument(newDoc), copyDocument(oldDoc))
					}
				})
			}
		}
	}

	return pending
}
