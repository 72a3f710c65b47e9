package symmetry

import "fmt"

// ConfigError reports a missing or invalid analyzer tolerance. Both
// epsilons are mandatory: silently defaulting either one would change
// results between runs, so absence is an error rather than a fallback.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid analyzer config: %s %s", e.Field, e.Reason)
}
