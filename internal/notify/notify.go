// Package notify holds the toast notifications shown by the widget.
package notify

import (
	"sync"
	"time"

	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
	"lingo/backend/internal/snowflake"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Options configures a Center.
type Options struct {
	TTL time.Duration
	// OnShow is called after a notification is pushed.
	OnShow func(model.Notification)
	// OnClose is called exactly once per notification, on expiry or dismissal.
	OnClose func(model.Notification)
	// NodeID seeds the snowflake generator.
	NodeID int64
}

type entry struct {
	n     model.Notification
	timer *time.Timer
}

// Center tracks live notifications.
type Center struct {
	ttl     time.Duration
	onShow  func(model.Notification)
	onClose func(model.Notification)
	ids     *snowflake.Generator
	now     func() time.Time

	mu    sync.Mutex
	live  map[string]*entry
	order []string
}

// New creates a Center.
func New(opts Options) (*Center, error) {
	ids, err := snowflake.New(opts.NodeID)
	if err != nil {
		return nil, err
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:     ttl,
		onShow:  opts.OnShow,
		onClose: opts.OnClose,
		ids:     ids,
		now:     time.Now,
		live:    make(map[string]*entry),
	}, nil
}

// Push creates a notification and arms its expiry timer.
func (c *Center) Push(kind model.NotificationKind, message string) model.Notification {
	now := c.now()
	n := model.Notification{
		ID:        c.ids.Next(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	e := &entry{n: n}
	c.live[n.ID] = e
	c.order = append(c.order, n.ID)
	e.timer = time.AfterFunc(c.ttl, func() { c.remove(n.ID, "expire") })
	c.mu.Unlock()

	logger.Debug("notification shown", "module", "notify", "action", "create", "resource", "notification", "result", "ok", "kind", string(kind), "id", n.ID)
	if c.onShow != nil {
		c.onShow(n)
	}
	return n
}

// Dismiss removes a notification before it expires. It reports whether the
// notification was still live.
func (c *Center) Dismiss(id string) bool {
	return c.remove(id, "dismiss")
}

// Current returns the most recent live notification.
func (c *Center) Current() (model.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.order) == 0 {
		return model.Notification{}, false
	}
	return c.live[c.order[len(c.order)-1]].n, true
}

// Active lists live notifications, oldest first.
func (c *Center) Active() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Notification, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.live[id].n)
	}
	return out
}

// Close dismisses every live notification.
func (c *Center) Close() {
	for _, n := range c.Active() {
		c.remove(n.ID, "dismiss")
	}
}

func (c *Center) remove(id, action string) bool {
	c.mu.Lock()
	e, ok := c.live[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	e.timer.Stop()
	delete(c.live, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	logger.Debug("notification closed", "module", "notify", "action", action, "resource", "notification", "result", "ok", "id", id)
	if c.onClose != nil {
		c.onClose(e.n)
	}
	return true
}
