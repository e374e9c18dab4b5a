package mmu

import (
	"fmt"
	"strings"
)

type Policy string

const (
	PolicyClock  Policy = "clock"
	PolicyLRU    Policy = "lru"
	PolicyRandom Policy = "rand"
)

// Policies lists the supported policies in display order.
var Policies = []Policy{PolicyRandom, PolicyLRU, PolicyClock}

// ParsePolicy accepts the policy names case-insensitively, plus "random".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clock":
		return PolicyClock, nil
	case "lru":
		return PolicyLRU, nil
	case "rand", "random":
		return PolicyRandom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// New creates an engine for the named policy.
func New(policy Policy, capacity int, opts ...Option) (MMU, error) {
	var (
		m   MMU
		err error
	)
	switch policy {
	case PolicyClock:
		m, err = NewClock(capacity, opts...)
	case PolicyLRU:
		m, err = NewLRU(capacity, opts...)
	case PolicyRandom:
		m, err = NewRandom(capacity, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(policy))
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
