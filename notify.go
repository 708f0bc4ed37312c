// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import "sync"

// DefaultChannel is the channel name notifications are addressed to.
const DefaultChannel = "host-overlay-channel"

// Notification methods.
const (
	MethodPageLoaded      = "OnWebViewPageLoaded"
	MethodClosed          = "OnWebViewClosed"
	MethodMessageReceived = "OnWebViewMessageReceived"
)

// Notifier delivers overlay events to the host. Delivery is fire-and-forget:
// errors are logged by the overlay and never retried.
type Notifier interface {
	Notify(channel, method, payload string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(channel, method, payload string) error

// Notify calls f.
func (f NotifierFunc) Notify(channel, method, payload string) error {
	return f(channel, method, payload)
}

// Handler receives the payload of one notification method.
type Handler func(payload string)

// Bus is a Notifier that fans notifications out to handlers subscribed per
// method on a single channel.
type Bus struct {
	channel string

	mu       sync.RWMutex
	handlers map[string]map[int]Handler
	nextID   int
}

// NewBus creates a bus listening on channel (DefaultChannel when empty).
func NewBus(channel string) *Bus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bus{
		channel:  channel,
		handlers: make(map[string]map[int]Handler),
	}
}

// Subscribe registers h for method and returns an unsubscribe function.
func (b *Bus) Subscribe(method string, h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.handlers[method] == nil {
		b.handlers[method] = make(map[int]Handler)
	}
	b.handlers[method][id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers[method], id)
		if len(b.handlers[method]) == 0 {
			delete(b.handlers, method)
		}
		b.mu.Unlock()
	}
}

// Notify delivers payload to every handler of method. It returns
// ErrNoListener when the channel does not match or nobody is subscribed.
func (b *Bus) Notify(channel, method, payload string) error {
	if channel != b.channel {
		return ErrNoListener
	}
	b.mu.RLock()
	snapshot := make([]Handler, 0, len(b.handlers[method]))
	for _, h := range b.handlers[method] {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	if len(snapshot) == 0 {
		return ErrNoListener
	}
	for _, h := range snapshot {
		h(payload)
	}
	return nil
}
