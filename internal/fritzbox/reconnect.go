package fritzbox

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// ReconnectConfig controls the pacing of ReconnectAndWait.
type ReconnectConfig struct {
	// GracePeriod is how long to wait after ForceTermination before the
	// first status check. Polling immediately can still observe the
	// Connected state from before the termination took effect.
	GracePeriod time.Duration
	// PollInterval is the delay between status checks.
	PollInterval time.Duration
	// MaxWait bounds the whole wait for the router to come back. Zero or
	// negative means wait forever.
	MaxWait time.Duration
}

// DefaultReconnectConfig returns the pacing used by the CLI.
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		GracePeriod:  10 * time.Second,
		PollInterval: 2 * time.Second,
		MaxWait:      5 * time.Minute,
	}
}

const opReconnectAndWait = "ReconnectAndWait"

// ReconnectAndWait forces a WAN termination and blocks until the router
// reports Connected again. A failing status check aborts the wait: a router
// that stops responding mid-reconnect is not treated as transient. Returns a
// KindTimedOut error if the router does not reconnect within cfg.MaxWait.
// Canceling ctx stops the wait and returns ctx's error.
func (c *Client) ReconnectAndWait(ctx context.Context, cfg ReconnectConfig) error {
	if err := c.ForceReconnect(ctx); err != nil {
		return err
	}

	var deadline time.Time
	if cfg.MaxWait > 0 {
		deadline = c.clock.Now().Add(cfg.MaxWait)
	}

	zlog.Debug().Dur("grace_period", cfg.GracePeriod).Msg("WAN termination requested, waiting before first status check")
	if err := c.sleep(ctx, cfg.GracePeriod); err != nil {
		return err
	}

	for {
		status, err := c.GetConnectionStatus(ctx)
		if err != nil {
			return err
		}
		if status.State == StateConnected {
			zlog.Info().Msg("Router reconnected")
			return nil
		}
		if !deadline.IsZero() && !c.clock.Now().Before(deadline) {
			return &RequestError{
				Kind: KindTimedOut,
				Op:   opReconnectAndWait,
				Err:  fmt.Errorf("router did not reconnect within %s", cfg.MaxWait),
			}
		}
		zlog.Info().Stringer("status", status).Msg("Reconnect pending")
		if err := c.sleep(ctx, cfg.PollInterval); err != nil {
			return err
		}
	}
}

// sleep blocks for d or until ctx is canceled.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := c.clock.Timer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
