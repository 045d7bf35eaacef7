package readability

// EmptyContentError signals that analysis was requested for blank or
// whitespace-only text. Recoverable: callers substitute a "no data" record.
type EmptyContentError struct{}

func (e *EmptyContentError) Error() string {
	return "readability error: content is empty or whitespace-only"
}
