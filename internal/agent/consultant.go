package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seo-consultant/internal/db"
	"github.com/jonathan/seo-consultant/internal/llm"
	"github.com/jonathan/seo-consultant/internal/prompts"
	"github.com/jonathan/seo-consultant/internal/types"
)

// defaultUserID identifies sessions started without an explicit user.
const defaultUserID = "default_user"

// checkInAfter is how long a session may sit idle before ProactiveCheckIn
// has something to say.
const checkInAfter = 7 * 24 * time.Hour

// aiScoreTarget is the AI readiness score below which an improvement
// recommendation is recorded.
const aiScoreTarget = 70.0

// Tools are the analysis operations the consultant can run on behalf of the
// user. The pipeline implements them against the live engine; tests
// substitute fakes.
type Tools interface {
	AnalyzeWebsite(ctx context.Context, url string) (*types.SiteAnalysis, error)
	CompareCompetitors(ctx context.Context, primary string, competitors []string) (*types.ComparisonResult, error)
	TrackPerformance(ctx context.Context, domain string) (*types.TrendReport, error)
}

// Consultant is the conversational agent. Each message is classified, routed
// to an analysis tool when it asks for one, and answered through the
// configured model. A nil model client is allowed: classification falls back
// to keyword heuristics and replies to deterministic rendering, so engine
// output still reaches the user.
type Consultant struct {
	llm    llm.Client
	tools  Tools
	memory *Memory
}

// NewConsultant builds a consultant over the given model client, analysis
// tools, and session store. The client may be nil.
func NewConsultant(client llm.Client, tools Tools, store db.SessionStore) *Consultant {
	return &Consultant{
		llm:    client,
		tools:  tools,
		memory: NewMemory(store),
	}
}

// Memory exposes the session memory for interfaces that load or inspect
// sessions directly.
func (c *Consultant) Memory() *Memory {
	return c.memory
}

// StartConversation resumes the user's most recent session or opens a new
// one, and returns a greeting that is also recorded on the session.
func (c *Consultant) StartConversation(ctx context.Context, userID, website string) (string, error) {
	if userID == "" {
		userID = defaultUserID
	}

	session, err := c.memory.GetOrCreateSession(ctx, userID, website)
	if err != nil {
		return "", err
	}

	welcome := c.welcome(ctx, len(session.Messages) > 0)
	if err := c.memory.AddMessage(ctx, types.RoleAssistant, welcome); err != nil {
		return "", err
	}
	return welcome, nil
}

// Chat processes one user message and returns the consultant's reply. Both
// sides of the exchange are recorded on the active session.
func (c *Consultant) Chat(ctx context.Context, message string) (string, error) {
	if c.memory.Current() == nil {
		if _, err := c.memory.GetOrCreateSession(ctx, defaultUserID, ""); err != nil {
			return "", err
		}
	}

	if err := c.memory.AddMessage(ctx, types.RoleUser, message); err != nil {
		return "", err
	}

	contextText := c.memory.ConversationContext()
	intent := llm.ClassifyIntent(ctx, c.llm, message)

	var reply string
	if intent.NeedsAnalysis {
		reply = c.handleAnalysis(ctx, message, contextText, intent)
	} else {
		reply = c.casual(ctx, message, contextText)
	}

	if err := c.memory.AddMessage(ctx, types.RoleAssistant, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// toolResult pairs an executed tool with its outcome for reply rendering.
type toolResult struct {
	name    string
	payload any
	err     error
}

// handleAnalysis routes an analysis intent to the matching tool. When the
// intent names no usable target the consultant asks for more information
// instead of guessing.
func (c *Consultant) handleAnalysis(ctx context.Context, message, contextText string, intent *llm.Intent) string {
	var results []toolResult

	switch intent.IntentType {
	case llm.IntentWebsiteAudit:
		urls := urlEntities(intent.Entities)
		if len(urls) > 0 {
			analysis, err := c.tools.AnalyzeWebsite(ctx, urls[0])
			results = append(results, toolResult{name: "website_analysis", payload: analysis, err: err})
			if err == nil {
				c.recordRecommendations(ctx, analysis)
				c.rememberWebsite(ctx, urls[0])
			}
		}

	case llm.IntentCompetitorAnalysis:
		urls := urlEntities(intent.Entities)
		if len(urls) >= 2 {
			comparison, err := c.tools.CompareCompetitors(ctx, urls[0], urls[1:])
			results = append(results, toolResult{name: "competitor_analysis", payload: comparison, err: err})
		}

	case llm.IntentPerformanceTracking:
		domain := c.memory.Current().Profile.Website
		if domain == "" && len(intent.Entities) > 0 {
			domain = intent.Entities[0]
		}
		if domain != "" {
			report, err := c.tools.TrackPerformance(ctx, domain)
			results = append(results, toolResult{name: "performance_tracking", payload: report, err: err})
		}
	}

	if len(results) == 0 {
		return c.needMoreInfo(ctx, message, contextText, intent.IntentType)
	}
	return c.advise(ctx, message, contextText, results)
}

// UpdateRecommendationStatus records the user's progress on a tracked
// recommendation and returns an acknowledgement. Completions earn a
// congratulation that is also written to the session.
func (c *Consultant) UpdateRecommendationStatus(ctx context.Context, id uuid.UUID, status string) (string, error) {
	if err := c.memory.UpdateRecommendationStatus(ctx, id, status); err != nil {
		return "", err
	}

	switch status {
	case types.StatusCompleted:
		reply := c.congratulate(ctx, id)
		if err := c.memory.AddMessage(ctx, types.RoleAssistant, reply); err != nil {
			return "", err
		}
		return reply, nil
	case types.StatusInProgress:
		return prompts.MustGet("replies.json", "status-in-progress"), nil
	default:
		return prompts.MustGet("replies.json", "status-updated"), nil
	}
}

// ProactiveCheckIn returns a check-in message when the active session has
// been idle for at least a week, or empty when nothing is due.
func (c *Consultant) ProactiveCheckIn(ctx context.Context) string {
	session := c.memory.Current()
	if session == nil || time.Since(session.UpdatedAt) < checkInAfter {
		return ""
	}

	if c.llm != nil {
		prompt := c.casualPrompt(prompts.MustGet("consultant.json", "check-in"), c.memory.UserSummary())
		if reply, err := c.llm.GenerateContent(ctx, prompt, llm.TierStandard); err == nil {
			return reply
		}
	}

	website := session.Profile.Website
	if website == "" {
		website = "your site"
	}
	return prompts.Format(prompts.MustGet("replies.json", "check-in"), map[string]string{
		"Website": website,
	})
}

// ProgressBreakdown counts tracked recommendations by status.
type ProgressBreakdown struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	CompletionRate float64 `json:"completion_rate"`
}

// ProgressReport summarizes the user's consulting journey so far.
type ProgressReport struct {
	TotalConversations int               `json:"total_conversations"`
	Recommendations    ProgressBreakdown `json:"recommendations"`
	LastActivity       time.Time         `json:"last_activity"`
	Profile            types.UserProfile `json:"user_profile"`
}

// UserProgress reports implementation progress for the active session, or
// nil when no session is loaded.
func (c *Consultant) UserProgress() *ProgressReport {
	session := c.memory.Current()
	if session == nil {
		return nil
	}

	breakdown := ProgressBreakdown{Total: len(session.Recommendations)}
	for _, rec := range session.Recommendations {
		switch rec.Status {
		case types.StatusCompleted:
			breakdown.Completed++
		case types.StatusInProgress:
			breakdown.InProgress++
		}
	}
	if breakdown.Total > 0 {
		breakdown.CompletionRate = float64(breakdown.Completed) / float64(breakdown.Total) * 100
	}

	return &ProgressReport{
		TotalConversations: len(session.Messages) / 2,
		Recommendations:    breakdown,
		LastActivity:       session.UpdatedAt,
		Profile:            session.Profile,
	}
}

// welcome picks the greeting for a new or returning user. With a model the
// greeting is generated against the user summary; without one the canned
// text is used.
func (c *Consultant) welcome(ctx context.Context, returning bool) string {
	key := "welcome-new"
	if returning {
		key = "welcome-return"
	}

	if c.llm != nil {
		prompt := c.casualPrompt(prompts.MustGet("consultant.json", key), c.memory.UserSummary())
		if reply, err := c.llm.GenerateContent(ctx, prompt, llm.TierStandard); err == nil {
			return reply
		}
	}
	return prompts.MustGet("replies.json", key)
}

// casual renders a conversational reply. Without a model the canned offline
// reply is returned so the user knows what still works.
func (c *Consultant) casual(ctx context.Context, message, contextText string) string {
	if c.llm != nil {
		if reply, err := c.llm.GenerateContent(ctx, c.casualPrompt(message, contextText), llm.TierStandard); err == nil {
			return reply
		}
	}
	return prompts.MustGet("replies.json", "offline-casual")
}

// advise renders the consulting reply for executed tools. With a model the
// advisor prompt carries the serialized results; without one the results
// are rendered deterministically.
func (c *Consultant) advise(ctx context.Context, message, contextText string, results []toolResult) string {
	if c.llm != nil {
		prompt := prompts.Format(prompts.MustGet("consultant.json", "advisor"), map[string]string{
			"Context":     contextText,
			"ToolResults": toolResultsBlock(results),
			"Message":     message,
		})
		if reply, err := c.llm.GenerateContent(ctx, prompt, llm.TierAdvanced); err == nil {
			return reply
		}
	}
	return renderToolResults(results)
}

// needMoreInfo answers an analysis intent that named no usable target.
func (c *Consultant) needMoreInfo(ctx context.Context, message, contextText, intentType string) string {
	if intentType == "" {
		intentType = "your request"
	}

	template := prompts.MustGet("replies.json", "need-more-info")
	if c.llm == nil {
		return strings.TrimSpace(prompts.Format(template, map[string]string{
			"Intent":  intentType,
			"Message": "",
		}))
	}

	ask := prompts.Format(template, map[string]string{
		"Intent":  intentType,
		"Message": message,
	})
	return c.casual(ctx, ask, contextText)
}

// congratulate acknowledges a completed recommendation.
func (c *Consultant) congratulate(ctx context.Context, id uuid.UUID) string {
	if c.llm != nil {
		message := fmt.Sprintf("The user completed a recommendation with ID %s. Congratulate them and suggest next steps.", id)
		if reply, err := c.llm.GenerateContent(ctx, c.casualPrompt(message, c.memory.ConversationContext()), llm.TierStandard); err == nil {
			return reply
		}
	}
	return prompts.MustGet("replies.json", "status-completed")
}

// casualPrompt fills the casual conversation template.
func (c *Consultant) casualPrompt(message, contextText string) string {
	return prompts.Format(prompts.MustGet("consultant.json", "casual"), map[string]string{
		"Context": contextText,
		"Message": message,
	})
}

// recordRecommendations turns analysis findings into tracked
// recommendations on the session. Store failures surface on the next
// message save, so they are not worth failing the chat turn over here.
func (c *Consultant) recordRecommendations(ctx context.Context, analysis *types.SiteAnalysis) {
	for _, rec := range recommendationsFor(analysis) {
		_ = c.memory.AddRecommendation(ctx, rec)
	}
}

// rememberWebsite stores the first audited URL on the profile so later
// performance tracking knows which domain the user means.
func (c *Consultant) rememberWebsite(ctx context.Context, url string) {
	if c.memory.Current() == nil || c.memory.Current().Profile.Website != "" {
		return
	}
	_ = c.memory.UpdateProfile(ctx, func(p *types.UserProfile) {
		p.Website = url
	})
}

// recommendationsFor derives tracked recommendations from an analysis: one
// per technical issue, one per content suggestion, and an AI readiness
// improvement when the score falls short of the target.
func recommendationsFor(analysis *types.SiteAnalysis) []types.SEORecommendation {
	var recs []types.SEORecommendation

	for _, issue := range analysis.TechnicalIssues {
		priority := types.PriorityMedium
		if strings.Contains(strings.ToLower(issue), "missing") {
			priority = types.PriorityHigh
		}
		recs = append(recs, types.SEORecommendation{
			ID:          uuid.New(),
			Title:       "Fix: " + issue,
			Description: "Address the technical SEO issue: " + issue,
			Priority:    priority,
			Category:    "technical_seo",
		})
	}

	for _, suggestion := range analysis.ContentSuggestions {
		recs = append(recs, types.SEORecommendation{
			ID:          uuid.New(),
			Title:       "Content: " + suggestion,
			Description: "Content optimization: " + suggestion,
			Priority:    types.PriorityMedium,
			Category:    "content_optimization",
		})
	}

	if analysis.Scores.AIReadiness < aiScoreTarget {
		recs = append(recs, types.SEORecommendation{
			ID:              uuid.New(),
			Title:           "Improve AI Search Readiness",
			Description:     fmt.Sprintf("Your AI readiness score is %.1f%%. Focus on structured content and schema markup.", analysis.Scores.AIReadiness),
			Priority:        types.PriorityHigh,
			Category:        "ai_optimization",
			EstimatedImpact: "High - Better AI citations",
		})
	}

	return recs
}

// toolResultsBlock serializes tool outcomes for the advisor prompt.
func toolResultsBlock(results []toolResult) string {
	var sb strings.Builder
	sb.WriteString("\nTool Results:\n")
	for _, result := range results {
		if result.err != nil {
			fmt.Fprintf(&sb, "- %s: Error - %s\n", result.name, result.err)
			continue
		}
		payload, err := json.MarshalIndent(result.payload, "", "  ")
		if err != nil {
			fmt.Fprintf(&sb, "- %s: Error - %s\n", result.name, err)
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", result.name, payload)
	}
	return sb.String()
}

// isURL reports whether an entity looks like a URL or bare domain.
func isURL(text string) bool {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return true
	}
	return strings.Contains(text, ".") && !strings.Contains(text, " ")
}

func urlEntities(entities []string) []string {
	var urls []string
	for _, entity := range entities {
		if isURL(entity) {
			urls = append(urls, entity)
		}
	}
	return urls
}
