package middleware

import (
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

// Counters accumulates processed-update volumes for shutdown reporting.
type Counters struct {
	callbacks atomic.Uint64
	photos    atomic.Uint64
	messages  atomic.Uint64
	other     atomic.Uint64
}

// Snapshot returns the current counter values.
func (m *Counters) Snapshot() (callbacks, photos, messages, other uint64) {
	return m.callbacks.Load(), m.photos.Load(), m.messages.Load(), m.other.Load()
}

// Metrics counts updates by kind as they enter the handler chain.
func Metrics(m *Counters) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			upd := c.Update()
			switch {
			case upd.Callback != nil:
				m.callbacks.Add(1)
			case upd.Message != nil && upd.Message.Photo != nil:
				m.photos.Add(1)
			case upd.Message != nil:
				m.messages.Add(1)
			default:
				m.other.Add(1)
			}
			return next(c)
		}
	}
}
