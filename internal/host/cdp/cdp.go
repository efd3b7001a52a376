// Package cdp drives a running Chromium through the DevTools protocol.
//
// Page targets stand in for tabs. DevTools has no notion of the tab strip, so
// indices follow the order in which the browser lists its targets and Move is
// not supported.
package cdp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/nikbrunner/tabs/internal/host"
)

// DefaultURL is Chromium's default remote debugging endpoint.
const DefaultURL = "http://127.0.0.1:9222"

const eventBuffer = 64

// Host is a host.Host connected to a browser's debugging endpoint.
type Host struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	mu     sync.Mutex
	ids    *idMap
	closed bool

	refresh chan struct{}
	done    chan struct{}
	events  chan host.Event
}

// Dial connects to the browser at url (http or ws DevTools endpoint) and
// starts mirroring its page targets.
func Dial(url string) (*Host, error) {
	if url == "" {
		url = DefaultURL
	}
	slog.Info("connecting to Chrome", "url", url)

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.Background(), url)
	ctx, cancel := chromedp.NewContext(allocCtx)

	h := &Host{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		ids:         newIDMap(),
		refresh:     make(chan struct{}, 1),
		done:        make(chan struct{}),
		events:      make(chan host.Event, eventBuffer),
	}

	// Targets attaches to the browser without opening a tab of its own.
	infos, err := chromedp.Targets(ctx)
	if err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}

	chromedp.ListenBrowser(ctx, func(ev any) {
		switch ev.(type) {
		case *target.EventTargetCreated, *target.EventTargetDestroyed, *target.EventTargetInfoChanged:
			h.nudge()
		}
	})
	if err := target.SetDiscoverTargets(true).Do(h.executor(ctx)); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("discover targets: %w", err)
	}

	h.publish(infos)
	go h.loop()
	return h, nil
}

func (h *Host) executor(ctx context.Context) context.Context {
	return cdp.WithExecutor(ctx, chromedp.FromContext(h.ctx).Browser)
}

func (h *Host) nudge() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

// loop re-lists targets after every change notification. Listing the whole
// set keeps ids and indices consistent with what the browser reports.
func (h *Host) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.emit(host.Event{Type: host.EventDisconnected})
			return
		case <-h.refresh:
			infos, err := chromedp.Targets(h.ctx)
			if err != nil {
				slog.Warn("list targets failed", "err", err)
				continue
			}
			h.publish(infos)
		}
	}
}

func (h *Host) publish(infos []*target.Info) {
	h.mu.Lock()
	tabs := h.ids.tabs(infos)
	h.mu.Unlock()
	h.emit(host.Event{Type: host.EventSnapshot, Tabs: tabs})
}

func (h *Host) emit(ev host.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	select {
	case h.events <- ev:
	default:
		slog.Warn("dropping host event, consumer too slow", "type", ev.Type.String())
	}
}

// Events implements host.Host.
func (h *Host) Events() <-chan host.Event {
	return h.events
}

// Close disconnects from the browser. The browser itself keeps running.
func (h *Host) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	<-h.done
	h.allocCancel()
	close(h.events)
	return nil
}

// Activate implements host.Controller.
func (h *Host) Activate(ctx context.Context, id int) error {
	h.mu.Lock()
	tid, ok := h.ids.target(id)
	h.mu.Unlock()
	if !ok {
		return host.ErrTabNotFound
	}
	if err := target.ActivateTarget(tid).Do(h.executor(ctx)); err != nil {
		return fmt.Errorf("activate target %s: %w", tid, err)
	}
	return nil
}

// Move implements host.Controller. DevTools cannot reorder tabs.
func (h *Host) Move(context.Context, int, int) error {
	return host.ErrUnsupported
}

var _ host.Host = (*Host)(nil)
