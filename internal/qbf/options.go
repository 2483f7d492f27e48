package qbf

// Options tunes the heuristics of the solver. Mirrors the shape of the
// teacher's sat.Options/sat.DefaultOptions: a small struct of named knobs
// rather than a config file, since none of these are meant to be tuned
// outside of benchmarking or tests.
type Options struct {
	// VariableDecay is the VSIDS decay factor applied after every conflict.
	VariableDecay float64
	// MaxConflicts, if positive, bounds the number of conflicts the solver
	// will process before returning Unknown. Zero means unbounded.
	MaxConflicts int
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		VariableDecay: vsidsDecayInitial,
		MaxConflicts:  0,
	}
}
