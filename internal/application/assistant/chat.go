package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultMaxIterations bounds model round trips per chat
const DefaultMaxIterations = 5

const maxChatMessages = 50

// ErrNotConfigured is returned when no model is available
var ErrNotConfigured = shared.NewDomainError("ASSISTANT_UNAVAILABLE", "The AI assistant is not configured")

// ToolMetrics records tool executions
type ToolMetrics interface {
	RecordToolCall(ctx context.Context, tool string, failed bool)
}

// ChatMessage is one turn sent by the client
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the conversation so far, ending with the user's question
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// ToolInvocation records one tool the model used
type ToolInvocation struct {
	Name    string          `json:"name"`
	Input   json.RawMessage `json:"input"`
	Output  string          `json:"output"`
	IsError bool            `json:"is_error"`
}

// ChatResponse is the final answer and the tools used to reach it
type ChatResponse struct {
	Answer     string           `json:"answer"`
	ToolCalls  []ToolInvocation `json:"tool_calls"`
	Iterations int              `json:"iterations"`
	Truncated  bool             `json:"truncated"`
}

// ChatService runs the tool loop against the model
type ChatService struct {
	model         Model
	tools         *Toolbox
	maxIterations int
	maxTokens     int
	metrics       ToolMetrics
	now           func() time.Time
}

// ChatOption configures a ChatService
type ChatOption func(*ChatService)

// WithMaxIterations overrides the round-trip limit
func WithMaxIterations(n int) ChatOption {
	return func(s *ChatService) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// WithMaxTokens sets the per-completion token budget
func WithMaxTokens(n int) ChatOption {
	return func(s *ChatService) { s.maxTokens = n }
}

// WithToolMetrics records every tool execution
func WithToolMetrics(m ToolMetrics) ChatOption {
	return func(s *ChatService) { s.metrics = m }
}

// NewChatService creates a ChatService. A nil model makes Chat return ErrNotConfigured.
func NewChatService(model Model, tools *Toolbox, opts ...ChatOption) *ChatService {
	s := &ChatService{
		model:         model,
		tools:         tools,
		maxIterations: DefaultMaxIterations,
		maxTokens:     1024,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat answers the last user message. While the model stops for tool use, each requested
// tool runs and its result is sent back. After maxIterations the last text is returned with a note.
func (s *ChatService) Chat(ctx context.Context, workspaceID uuid.UUID, req ChatRequest) (*ChatResponse, error) {
	if s.model == nil {
		return nil, ErrNotConfigured
	}
	messages, err := toMessages(req.Messages)
	if err != nil {
		return nil, err
	}
	specs, err := s.tools.Specs()
	if err != nil {
		return nil, err
	}

	log := logger.L(ctx).With(zap.String("workspace_id", workspaceID.String()))
	resp := &ChatResponse{ToolCalls: make([]ToolInvocation, 0)}
	lastText := ""

	for resp.Iterations < s.maxIterations {
		resp.Iterations++
		completion, err := s.model.Complete(ctx, CompletionRequest{
			System:    s.systemPrompt(),
			Messages:  messages,
			Tools:     specs,
			MaxTokens: s.maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("assistant completion: %w", err)
		}
		if text := completion.Text(); text != "" {
			lastText = text
		}

		calls := completion.ToolCalls()
		if completion.StopReason != StopToolUse || len(calls) == 0 {
			resp.Answer = lastText
			return resp, nil
		}

		messages = append(messages, Message{Role: RoleAssistant, Content: completion.Content})
		results := make([]ContentBlock, 0, len(calls))
		for _, call := range calls {
			output, failed := s.tools.Call(ctx, workspaceID, call.Name, call.Input)
			if s.metrics != nil {
				s.metrics.RecordToolCall(ctx, call.Name, failed)
			}
			log.Debug("assistant tool call",
				zap.String("tool", call.Name),
				zap.Bool("failed", failed),
				zap.Int("iteration", resp.Iterations),
			)
			resp.ToolCalls = append(resp.ToolCalls, ToolInvocation{
				Name:    call.Name,
				Input:   call.Input,
				Output:  output,
				IsError: failed,
			})
			results = append(results, ContentBlock{
				Type:      BlockToolResult,
				ToolUseID: call.ID,
				Content:   output,
				IsError:   failed,
			})
		}
		messages = append(messages, Message{Role: RoleUser, Content: results})
	}

	log.Warn("assistant stopped at iteration limit", zap.Int("max_iterations", s.maxIterations))
	resp.Truncated = true
	note := fmt.Sprintf("(Stopped after %d tool rounds. The answer may be incomplete.)", s.maxIterations)
	if lastText == "" {
		resp.Answer = note
	} else {
		resp.Answer = lastText + "\n\n" + note
	}
	return resp, nil
}

func (s *ChatService) systemPrompt() string {
	return "You are the assistant of a sales CRM. Answer questions about this workspace's deals, " +
		"contacts, activities and performance. Use the tools to look data up instead of guessing, " +
		"and say so when the data does not answer the question. Keep answers short. " +
		"Today is " + s.now().UTC().Format("2006-01-02") + "."
}

func toMessages(in []ChatMessage) ([]Message, error) {
	if len(in) == 0 {
		return nil, shared.Validation("At least one message is required")
	}
	if len(in) > maxChatMessages {
		return nil, shared.Validation(fmt.Sprintf("A conversation cannot exceed %d messages", maxChatMessages))
	}
	out := make([]Message, 0, len(in))
	for _, m := range in {
		role := Role(strings.ToLower(m.Role))
		if role != RoleUser && role != RoleAssistant {
			return nil, shared.Validation("Message role must be user or assistant")
		}
		if strings.TrimSpace(m.Content) == "" {
			return nil, shared.Validation("Message content is required")
		}
		out = append(out, Message{Role: role, Content: []ContentBlock{TextBlock(m.Content)}})
	}
	if out[len(out)-1].Role != RoleUser {
		return nil, shared.Validation("The last message must come from the user")
	}
	return out, nil
}
