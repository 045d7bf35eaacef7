package analysis

import "fmt"

// NoPagesCrawledError indicates the crawl produced zero usable pages, so
// there is nothing to analyze.
type NoPagesCrawledError struct {
	Domain string
}

func (e *NoPagesCrawledError) Error() string {
	return fmt.Sprintf("analysis error: no pages crawled for %s", e.Domain)
}

// AnalysisError wraps a failure while analyzing a domain.
type AnalysisError struct {
	Domain  string
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis error for %s: %s: %v", e.Domain, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis error for %s: %s", e.Domain, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
