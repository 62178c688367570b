package rebalance

import "fmt"

// ConfigError reports a fault in the user-authored policy: a percentage sum
// off by more than the tolerance, a constraint that does not navigate the
// tree, a double subdivision, or a category set that does not match the
// actual positions. It always identifies the offending target so the user
// can fix the configuration; it is never retried or silently corrected.
type ConfigError struct {
	Target string // offending target name, empty when the policy as a whole is at fault
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Target == "" {
		return "invalid policy: " + e.Reason
	}
	return fmt.Sprintf("target %q: %s", e.Target, e.Reason)
}

// InternalError reports an inconsistency the resolver produced itself, such
// as a flat allocation that does not sum back to 100 even though every
// per-target sum validated. It indicates a resolver defect, not a
// configuration mistake, and is kept distinct from ConfigError so operators
// do not chase a policy-authoring error that is not there.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "internal: " + e.Reason
}
