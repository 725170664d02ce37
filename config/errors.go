package config

import "errors"

var (
	// ErrMalformedLine is returned when a non-blank, non-comment line has no
	// "=" separator.
	ErrMalformedLine = errors.New("config: malformed line, expected key=value")

	// ErrUnknownOptimizationScheme/ErrUnknownPlanningModel are Configuration
	// errors per §7: fail fast at start-up with a descriptive diagnostic,
	// rather than falling back to a sentinel (that fallback rule is for
	// *data* rows, not configuration).
	ErrUnknownOptimizationScheme = errors.New("config: unrecognized optimization_scheme")
	ErrUnknownPlanningModel      = errors.New("config: unrecognized planning_model")
	ErrUnknownUtilityScheme      = errors.New("config: unrecognized utility_scheme")
)
