package feynman

// ConfigError reports a request that cannot be satisfied given the
// engine's configuration — an oversized sample request, or no register
// cut fitting the memory budget — as opposed to gate.InvariantError,
// which reports a malformed circuit. Distinguishing the two lets a
// caller retry a ConfigError with a larger memory budget or smaller
// request, where an InvariantError means the circuit itself is invalid.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "feynman: " + e.Reason }
