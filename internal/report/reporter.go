// Package report delivers the final score and outcome of a match to the
// automation platform (an AWX/Tower job template launch). Delivery is
// fire-and-forget with bounded retries: failures are logged and journaled,
// never surfaced to the game loop.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/battle"
	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/retry"
	"github.com/arcade-cab/whackapirate/internal/storage"
)

// ErrAPI marks automation-platform failures. They are logged, journaled
// and otherwise ignored.
var ErrAPI = errors.New("automation API error")

// deliveryPolicy paces the bounded retries of one report.
var deliveryPolicy = retry.Policy{
	BaseDelay: 500 * time.Millisecond,
	MaxDelay:  5 * time.Second,
}

// payload is the AWX job-launch body.
type payload struct {
	ExtraVars extraVars `json:"extra_vars"`
}

type extraVars struct {
	GameScore int    `json:"game_score"`
	Outcome   string `json:"outcome"`
}

// Client reports match outcomes. A nil journal disables journaling; an
// empty URL disables delivery entirely (the cabinet runs fine offline).
type Client struct {
	cfg     config.ReportConfig
	logger  *log.Logger
	journal *storage.Store
	http    *http.Client

	wg sync.WaitGroup
}

// NewClient creates a reporter with the configured per-request timeout.
func NewClient(cfg config.ReportConfig, journal *storage.Store, logger *log.Logger) *Client {
	return &Client{
		cfg:     cfg,
		logger:  logger,
		journal: journal,
		http:    &http.Client{Timeout: cfg.Timeout()},
	}
}

// ReportOutcome launches the delivery in the background and returns
// immediately. It satisfies game.Reporter.
func (c *Client) ReportOutcome(score int, outcome battle.Outcome) {
	if c.cfg.URL == "" {
		c.logger.Debug("automation reporting disabled, skipping", "score", score, "outcome", outcome)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.deliver(score, outcome)
	}()
}

// Wait blocks until all in-flight deliveries finish. Used at shutdown and
// in tests.
func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) deliver(score int, outcome battle.Outcome) {
	attempts := 0
	err := retry.DoClassified(context.Background(), policyFor(c.cfg), retryable, func() error {
		attempts++
		return c.post(score, outcome)
	})

	if err != nil {
		c.logger.Error("automation report failed", "score", score, "outcome", outcome, "attempts", attempts, "error", err)
	} else {
		c.logger.Info("automation report delivered", "score", score, "outcome", outcome, "attempts", attempts)
	}

	if c.journal != nil {
		if _, jerr := c.journal.RecordDelivery(score, outcome.String(), attempts, err); jerr != nil {
			c.logger.Warn("could not journal report delivery", "error", jerr)
		}
	}
}

func policyFor(cfg config.ReportConfig) retry.Policy {
	p := deliveryPolicy
	p.MaxAttempts = uint64(cfg.MaxAttempts)
	return p
}

// permanentStatus marks HTTP statuses that retrying cannot fix.
type permanentStatus struct {
	code int
}

func (e *permanentStatus) Error() string {
	return fmt.Sprintf("job launch rejected with status %d", e.code)
}

func retryable(err error) bool {
	var perm *permanentStatus
	return !errors.As(err, &perm)
}

// post issues one job-launch request.
func (c *Client) post(score int, outcome battle.Outcome) error {
	body, err := json.Marshal(payload{ExtraVars: extraVars{GameScore: score, Outcome: outcome.String()}})
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", ErrAPI, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrAPI, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: %w", ErrAPI, &permanentStatus{code: resp.StatusCode})
	default:
		return fmt.Errorf("%w: job launch returned status %d", ErrAPI, resp.StatusCode)
	}
}
