package event

import (
	"github.com/charmbracelet/log"
)

// Handler consumes a single event. Handlers run synchronously in the
// dispatcher's caller; a handler that panics is isolated and logged and
// does not stop delivery to later handlers.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed when a
// state transition replaces the active listener set.
type Subscription struct {
	eventType Type
	id        uint64
}

type registration struct {
	id uint64
	fn Handler
}

// Dispatcher is a typed publish/subscribe bus. It is constructed once at
// startup and passed explicitly into every component that publishes or
// subscribes; there is no package-level instance.
//
// The dispatcher is not goroutine-safe: all subscribe/dispatch traffic
// happens on the main tick, per the concurrency model. Handlers may
// dispatch further events; nested dispatches complete depth-first before
// the outer Dispatch returns.
type Dispatcher struct {
	logger   *log.Logger
	handlers map[Type][]registration
	nextID   uint64
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		handlers: make(map[Type][]registration),
	}
}

// Subscribe registers a handler for one event variant. Handlers for a
// variant run in subscription order.
func (d *Dispatcher) Subscribe(t Type, fn Handler) Subscription {
	d.nextID++
	d.handlers[t] = append(d.handlers[t], registration{id: d.nextID, fn: fn})
	return Subscription{eventType: t, id: d.nextID}
}

// Unsubscribe removes a previously registered handler. Removing a handler
// that is already gone is a no-op.
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	regs := d.handlers[sub.eventType]
	for i, r := range regs {
		if r.id == sub.id {
			d.handlers[sub.eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Dispatch invokes every handler currently subscribed to the event's
// variant, in subscription order, within the caller's execution context.
// The handler list is snapshotted first, so handlers may subscribe or
// unsubscribe during delivery without affecting the current dispatch.
func (d *Dispatcher) Dispatch(ev Event) {
	regs := d.handlers[ev.Type()]
	if len(regs) == 0 {
		return
	}
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)

	d.logger.Debug("dispatching event", "type", ev.Type())
	for _, r := range snapshot {
		d.invoke(r, ev)
	}
}

// invoke runs one handler with panic isolation.
func (d *Dispatcher) invoke(r registration, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("event handler failed",
				"type", ev.Type(),
				"error", rec,
			)
		}
	}()
	r.fn(ev)
}

// Clear drops every registered handler. Used at process teardown.
func (d *Dispatcher) Clear() {
	d.handlers = make(map[Type][]registration)
	d.logger.Info("all event listeners cleared")
}
