package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/seo-consultant/internal/agent"
	"github.com/jonathan/seo-consultant/internal/db"
	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/jonathan/seo-consultant/internal/trends"
	"github.com/jonathan/seo-consultant/internal/types"
)

// ChatResponse carries the consultant's reply for one turn. The session ID
// lets the client continue the same conversation.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// handleAnalyze crawls one site and returns its full analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeInvalidBody, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	result, err := s.pipeline.AnalyzeWithLimit(r.Context(), req.Domain, req.MaxPages)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, codeAnalysisFailed, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleCompare analyzes the primary domain and its competitors and returns
// the competitive standing. Competitor failures are reported in the result,
// only a primary failure is an error.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req types.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeInvalidBody, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	result, err := s.pipeline.CompareCompetitors(r.Context(), req.Domain, req.Competitors)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, codeComparisonFailed, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleTrack records a performance snapshot and returns the trend report.
// export=csv swaps the payload for the CSV rendering of the same report.
func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	var req types.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeInvalidBody, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	report, err := s.pipeline.TrackPerformance(r.Context(), req.Domain)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, codeTrackingFailed, err.Error())
		return
	}

	if req.Export == "csv" {
		csv, err := trends.ExportCSV(report)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, codeExportFailed, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Printf("Error writing CSV response: %v", err)
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleTrends returns the trend report for a domain without recording a
// new observation.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")
	if domain == "" {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, "Domain is required")
		return
	}

	report, err := s.pipeline.Trends(r.Context(), domain)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, codeTrendsFailed, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleChat processes one consultant turn. Without a session_id the
// consultant resumes the caller's most recent session or opens a new one.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeInvalidBody, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	// A fresh consultant per request over the shared session store keeps
	// concurrent chats from bleeding into each other's sessions.
	consultant := agent.NewConsultant(s.llm, s.pipeline, s.sessions)

	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, codeInvalidSessionID, "Invalid session ID format")
			return
		}
		session, err := consultant.Memory().LoadSession(r.Context(), id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, codeSessionStore, "Session store error: "+err.Error())
			return
		}
		if session == nil {
			s.errorResponse(w, http.StatusNotFound, codeSessionNotFound, "Session not found")
			return
		}
	}

	reply, err := consultant.Chat(r.Context(), req.Message)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, codeChatFailed, err.Error())
		return
	}

	resp := ChatResponse{Reply: reply}
	if current := consultant.Memory().Current(); current != nil {
		resp.SessionID = current.ID.String()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListSessions returns recent sessions, newest first.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, codeValidation, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	sessions, err := s.sessions.ListSessions(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, codeSessionStore, "Session store error: "+err.Error())
		return
	}
	if sessions == nil {
		sessions = []db.SessionSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// handleGetSession returns one session with its full message history.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	session, err := s.sessions.GetSession(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, codeSessionStore, "Session store error: "+err.Error())
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, codeSessionNotFound, "Session not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleDeleteSession removes a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	if err := s.sessions.DeleteSession(r.Context(), id); err != nil {
		if err.Error() == "session not found: "+id.String() {
			s.errorResponse(w, http.StatusNotFound, codeSessionNotFound, "Session not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, codeSessionStore, "Session store error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAnalyzeStream runs an analysis while streaming progress as SSE
// events. The final step event carries the full analysis payload.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, "domain query parameter is required")
		return
	}

	maxPages := 0
	if raw := r.URL.Query().Get("max_pages"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, codeValidation, "Invalid max_pages parameter")
			return
		}
		maxPages = parsed
	}

	stream, err := newSSEStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, codeStreaming, err.Error())
		return
	}

	log.Printf("Starting streaming analysis of %s...", domain)

	streaming := s.pipeline.WithProgress(func(event pipeline.ProgressEvent) {
		if err := stream.send("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})

	result, err := streaming.AnalyzeWithLimit(r.Context(), domain, maxPages)
	if err != nil {
		log.Printf("Streaming analysis failed: %v", err)
		stream.sendError(err.Error())
		return
	}

	stream.sendComplete(result.Domain, "completed")
	log.Printf("Streaming analysis of %s completed", result.Domain)
}

// sessionID parses the {id} path value, writing the error response itself
// when the value is missing or malformed.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, codeValidation, "Session ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, codeInvalidSessionID, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}
