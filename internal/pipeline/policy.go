package pipeline

import (
	"fmt"
	"strings"
)

// FailurePolicy decides what an upstream failure on one resource does to
// the request that needed it.
type FailurePolicy string

const (
	// PolicyFatal fails the whole request.
	PolicyFatal FailurePolicy = "fatal"
	// PolicyDegrade replaces the resource with its empty value and carries on.
	PolicyDegrade FailurePolicy = "degrade"
)

// ParseFailurePolicy accepts "fatal" or "degrade" (case-insensitive).
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFatal, PolicyDegrade:
		return p, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}

// Policies holds the failure policy of each upstream resource.
type Policies struct {
	Establishments FailurePolicy
	Capacities     FailurePolicy
	Detail         FailurePolicy
}

// DefaultPolicies: a missing establishments list fails the listing, missing
// capacities only blank the numbers, and a failed detail call reads as
// "no data".
func DefaultPolicies() Policies {
	return Policies{
		Establishments: PolicyFatal,
		Capacities:     PolicyDegrade,
		Detail:         PolicyDegrade,
	}
}
