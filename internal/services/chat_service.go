package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hervital/hervital/internal/models"
)

// AgentClient is the upstream chat-completions API. Implementations live in
// internal/agent; tests stub it.
type AgentClient interface {
	Reply(ctx context.Context, message string) (*AgentReply, error)
}

// AgentReply is the structured answer the assistant model is prompted to
// produce.
type AgentReply struct {
	Response         string   `json:"response"`
	Sentiment        string   `json:"sentiment"`
	EscalationNeeded bool     `json:"escalationNeeded"`
	SuggestedActions []string `json:"suggestedActions,omitempty"`
}

type ChatStore interface {
	GetUser(id string) (*models.User, error)
	InsertChatLog(l *models.ChatLog) error
}

// ChatService relays a user message to the assistant and logs the exchange.
type ChatService struct {
	store ChatStore
	agent AgentClient
	now   func() time.Time
	idGen func() string
}

// ChatReply is what the handler returns: the model output plus the crisis
// resources attached whenever the model flags escalation.
type ChatReply struct {
	Response         string        `json:"response"`
	Sentiment        string        `json:"sentiment"`
	EscalationNeeded bool          `json:"escalation_needed"`
	SuggestedActions []string      `json:"suggested_actions,omitempty"`
	Crisis           *CrisisNotice `json:"crisis,omitempty"`
}

func NewChatService(store ChatStore, agent AgentClient) *ChatService {
	return &ChatService{
		store: store,
		agent: agent,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: uuid.NewString,
	}
}

// Send relays one message. The exchange is logged before returning; a log
// failure fails the call so no response reaches the user unrecorded.
func (s *ChatService) Send(ctx context.Context, userID, message string) (*ChatReply, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, NewInvalidError("message required")
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewReferentialError("user not found")
	}

	reply, err := s.agent.Reply(ctx, message)
	if err != nil {
		return nil, NewBadGatewayError("assistant unavailable")
	}

	entry := &models.ChatLog{
		ID:               s.idGen(),
		UserID:           userID,
		Message:          message,
		Response:         reply.Response,
		Sentiment:        reply.Sentiment,
		EscalationNeeded: reply.EscalationNeeded,
		CreatedAt:        s.now(),
	}
	if err := s.store.InsertChatLog(entry); err != nil {
		return nil, err
	}

	out := &ChatReply{
		Response:         reply.Response,
		Sentiment:        reply.Sentiment,
		EscalationNeeded: reply.EscalationNeeded,
		SuggestedActions: reply.SuggestedActions,
	}
	if reply.EscalationNeeded {
		out.Crisis = crisisNotice()
	}
	return out, nil
}
