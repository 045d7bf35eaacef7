package comparison

import "fmt"

// PrimaryAnalysisError indicates the primary domain could not be analyzed,
// which makes the whole comparison unusable.
type PrimaryAnalysisError struct {
	Domain string
	Cause  error
}

func (e *PrimaryAnalysisError) Error() string {
	return fmt.Sprintf("comparison error: primary analysis failed for %s: %v", e.Domain, e.Cause)
}

func (e *PrimaryAnalysisError) Unwrap() error {
	return e.Cause
}
