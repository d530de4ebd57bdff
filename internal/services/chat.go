package services

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"wellness-backend/internal/models"
)

// ChatSystemPrompt is sent as the system turn on every relayed message.
const ChatSystemPrompt = "You are a friendly health and wellness assistant. Give practical, evidence-based " +
	"guidance on sleep, physical activity, nutrition and stress management. Keep answers to 2-3 short " +
	"paragraphs at most. You are not a doctor: for symptoms, medication or emergencies, tell the user to " +
	"contact a healthcare professional."

const chatMaxTokens = 500

// Canned replies returned in place of an upstream completion.
const (
	NoCredentialReply = "I'm currently running in offline mode, so I can only share general guidance. " +
		"Keep your blood sugar steady by eating regular, balanced meals rich in fiber and lean protein, " +
		"stay hydrated, and aim for at least 30 minutes of light activity such as walking after meals. " +
		"Always follow the plan agreed with your healthcare provider."

	RateLimitedReply = "I'm receiving a lot of questions right now, please try again in a minute. " +
		"In the meantime: check your glucose levels as recommended, choose water over sugary drinks, " +
		"and take a short walk to help your body use insulin more effectively."

	UnavailableReply = "I'm having trouble reaching my knowledge service at the moment. " +
		"Please try again shortly. If you have urgent health concerns, contact your healthcare provider."
)

// ErrNoMessage is the only error Relay returns.
var ErrNoMessage = errors.New("no message provided")

// ErrUpstreamRateLimited is returned by a Completer when the provider answers 429.
var ErrUpstreamRateLimited = errors.New("upstream rate limited")

// FailureKind classifies why Relay fell back to a canned reply.
type FailureKind string

const (
	FailureNone              FailureKind = ""
	FailureInputInvalid      FailureKind = "input_invalid"
	FailureCredentialMissing FailureKind = "credential_missing"
	FailureRateLimited       FailureKind = "rate_limited"
	FailureUpstream          FailureKind = "upstream_failure"
)

// Completer sends one system+user exchange to a chat-completion provider.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ChatRelay forwards a single user message upstream. It keeps no history and
// never surfaces upstream failures; those become canned replies.
type ChatRelay struct {
	completer Completer
}

// NewChatRelay returns a relay. A nil completer means no upstream credential
// is configured and every message gets NoCredentialReply.
func NewChatRelay(completer Completer) *ChatRelay {
	return &ChatRelay{completer: completer}
}

func (r *ChatRelay) Relay(ctx context.Context, message string) (models.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		log.WithField("failure", string(classifyFailure(ErrNoMessage))).Debug("chat relay rejected empty message")
		return models.ChatReply{}, ErrNoMessage
	}

	if r.completer == nil {
		logFallback(FailureCredentialMissing, nil)
		return ok(NoCredentialReply), nil
	}

	text, err := r.completer.Complete(ctx, ChatSystemPrompt, message)
	if err != nil {
		kind := classifyFailure(err)
		logFallback(kind, err)
		if kind == FailureRateLimited {
			return ok(RateLimitedReply), nil
		}
		return ok(UnavailableReply), nil
	}

	return ok(text), nil
}

func classifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrNoMessage):
		return FailureInputInvalid
	case errors.Is(err, ErrUpstreamRateLimited):
		return FailureRateLimited
	default:
		return FailureUpstream
	}
}

func logFallback(kind FailureKind, err error) {
	entry := log.WithField("failure", string(kind))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("chat relay returned fallback reply")
}

func ok(text string) models.ChatReply {
	return models.ChatReply{Status: models.ChatStatusOK, Text: text}
}
