// Package server provides the HTTP REST API for the SEO consultant.
package server

// Error codes carried in the JSON error envelope next to the human-readable
// message. Clients branch on the code; the message may change.
const (
	codeInvalidBody      = "invalid_body"
	codeValidation       = "validation_failed"
	codeInvalidSessionID = "invalid_session_id"
	codeSessionNotFound  = "session_not_found"
	codeSessionStore     = "session_store_error"
	codeAnalysisFailed   = "analysis_failed"
	codeComparisonFailed = "comparison_failed"
	codeTrackingFailed   = "tracking_failed"
	codeTrendsFailed     = "trends_failed"
	codeChatFailed       = "chat_failed"
	codeExportFailed     = "export_failed"
	codeStreaming        = "streaming_unsupported"
	codeRateLimited      = "rate_limit_exceeded"
)
