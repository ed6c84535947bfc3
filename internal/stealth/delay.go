package stealth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// DelayProfile names a pause range applied before each outbound request.
type DelayProfile string

const (
	ProfileOff        DelayProfile = "off"
	ProfileAggressive DelayProfile = "aggressive"
	ProfileNormal     DelayProfile = "normal"
	ProfileCautious   DelayProfile = "cautious"
)

// ParseDelayProfile validates a profile name. The empty string means off.
func ParseDelayProfile(s string) (DelayProfile, error) {
	switch p := DelayProfile(s); p {
	case "":
		return ProfileOff, nil
	case ProfileOff, ProfileAggressive, ProfileNormal, ProfileCautious:
		return p, nil
	}
	return "", fmt.Errorf("unknown delay profile %q", s)
}

// HumanDelay adds randomized jitter between requests, which matters when a
// batch of part numbers is looked up back to back.
type HumanDelay struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewHumanDelay returns the delay for profile, or nil for ProfileOff.
func NewHumanDelay(profile DelayProfile) *HumanDelay {
	switch profile {
	case ProfileCautious:
		return &HumanDelay{MinDelay: 2 * time.Second, MaxDelay: 5 * time.Second}
	case ProfileNormal:
		return &HumanDelay{MinDelay: 500 * time.Millisecond, MaxDelay: 2 * time.Second}
	case ProfileAggressive:
		return &HumanDelay{MinDelay: 100 * time.Millisecond, MaxDelay: 400 * time.Millisecond}
	default:
		return nil
	}
}

// Wait sleeps for a random duration within the configured range.
func (h *HumanDelay) Wait(ctx context.Context) error {
	t := time.NewTimer(h.Next())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns a random delay in [MinDelay, MaxDelay).
func (h *HumanDelay) Next() time.Duration {
	if h.MinDelay >= h.MaxDelay {
		return h.MinDelay
	}
	return h.MinDelay + time.Duration(rand.Int64N(int64(h.MaxDelay-h.MinDelay)))
}
