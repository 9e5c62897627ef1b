package hardware

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/retry"
)

// Poller timing. The poll interval is well under one frame at 60 ticks per
// second; the health interval paces recovery probes in degraded mode.
const (
	pollInterval   = 5 * time.Millisecond
	healthInterval = time.Second
)

// DefaultRetryPolicy bounds a single acquisition cycle: four attempts,
// delays doubling from 25ms, capped at 250ms.
var DefaultRetryPolicy = retry.Policy{
	MaxAttempts: 4,
	BaseDelay:   25 * time.Millisecond,
	MaxDelay:    250 * time.Millisecond,
}

// Poller acquires signals from a Port on a dedicated goroutine and pushes
// them into the hand-off queue. It never touches game state: the game loop
// drains the queue once per tick. The poller persists for the process
// lifetime; game states merely stop consuming its output.
type Poller struct {
	port     Port
	queue    *Queue
	logger   *log.Logger
	policy   retry.Policy
	degraded atomic.Bool
	done     chan struct{}
}

// NewPoller creates a poller feeding the given queue.
func NewPoller(port Port, queue *Queue, logger *log.Logger) *Poller {
	return &Poller{
		port:   port,
		queue:  queue,
		logger: logger,
		policy: DefaultRetryPolicy,
		done:   make(chan struct{}),
	}
}

// Start begins acquisition. It returns immediately; the loop runs until
// the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx)
}

// Done is closed when the acquisition loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Degraded reports whether input acquisition is currently unavailable.
// Degraded mode shows as unresponsive buttons: mole windows still expire
// to escapes, keeping the match completable.
func (p *Poller) Degraded() bool {
	return p.degraded.Load()
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	lastProbe := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if p.degraded.Load() {
			if time.Since(lastProbe) < healthInterval {
				continue
			}
			lastProbe = time.Now()
			if h := p.port.HealthCheck(); h == HealthOK {
				p.degraded.Store(false)
				p.logger.Info("hardware recovered")
			}
			continue
		}

		p.acquire(ctx)
	}
}

// acquire runs one poll cycle under the retry policy. Each transient
// failure is logged; exhausting the policy flips the poller into degraded
// mode instead of propagating the fault.
func (p *Poller) acquire(ctx context.Context) {
	err := retry.Do(ctx, p.policy, func() error {
		signals, err := p.port.Poll()
		if err != nil {
			p.logger.Warn("hardware poll failed", "error", err)
			return err
		}
		for _, sig := range signals {
			p.queue.Push(sig)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		p.degraded.Store(true)
		p.logger.Error("hardware input degraded", "error", err)
	}
}
