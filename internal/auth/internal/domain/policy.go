package domain

import "errors"

// Effect is the outcome of an authorization decision.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

const (
	// PrincipalID is the fixed principal reported for every decision. No
	// per-caller identity is resolved.
	PrincipalID = "user"

	// PolicyVersion is the IAM policy language version.
	PolicyVersion = "2012-10-17"

	// InvokeAction is the API Gateway action guarded by the policy.
	InvokeAction = "execute-api:Invoke"
)

var (
	ErrMissingMethodArn = errors.New("method ARN is required")
	ErrMissingEffect    = errors.New("policy effect is required")
)

// PolicyDecision is the gate's verdict for one request.
type PolicyDecision struct {
	PrincipalID string
	Effect      Effect
	Resource    string
}

// Decide returns Allow iff token is a member of keys.
func Decide(token string, keys KeySet) Effect {
	if keys.Contains(token) {
		return EffectAllow
	}
	return EffectDeny
}

// NewPolicyDecision builds a decision for resource. It refuses to build a
// decision with an empty effect or resource.
func NewPolicyDecision(principalID string, effect Effect, resource string) (*PolicyDecision, error) {
	if effect == "" {
		return nil, ErrMissingEffect
	}
	if resource == "" {
		return nil, ErrMissingMethodArn
	}
	return &PolicyDecision{
		PrincipalID: principalID,
		Effect:      effect,
		Resource:    resource,
	}, nil
}

// Statement is one statement of a policy document, reduced to the fields
// that matter for evaluation.
type Statement struct {
	Effect    string
	Actions   []string
	Resources []string
}

// Evaluate reports whether statements grant action on resource. An explicit
// Deny on a matching statement wins over any Allow; no matching Allow means
// an implicit deny.
func Evaluate(statements []Statement, action, resource string) bool {
	allowed := false
	for _, st := range statements {
		if !matchesAny(st.Actions, action) || !matchesAny(st.Resources, resource) {
			continue
		}
		switch Effect(st.Effect) {
		case EffectDeny:
			return false
		case EffectAllow:
			allowed = true
		}
	}
	return allowed
}

func matchesAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if MatchWildcard(p, s) {
			return true
		}
	}
	return false
}

// MatchWildcard matches s against an IAM-style pattern where '*' matches any
// run of characters (including none) and '?' matches exactly one.
func MatchWildcard(pattern, s string) bool {
	p, i := 0, 0
	star, mark := -1, 0
	for i < len(s) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == s[i]):
			p++
			i++
		case p < len(pattern) && pattern[p] == '*':
			star = p
			mark = i
			p++
		case star != -1:
			p = star + 1
			mark++
			i = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
