package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/googleapis/gax-go/v2/apierror"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestRelay_EmptyMessageRejected(t *testing.T) {
	stub := &stubCompleter{reply: "unused"}
	relay := NewChatRelay(stub)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := relay.Relay(context.Background(), msg)
		if !errors.Is(err, ErrNoMessage) {
			t.Fatalf("expected ErrNoMessage for %q, got %v", msg, err)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", stub.calls)
	}
	if ErrNoMessage.Error() != "no message provided" {
		t.Fatalf("unexpected error text: %q", ErrNoMessage.Error())
	}
}

func TestRelay_NoCredential(t *testing.T) {
	reply, err := NewChatRelay(nil).Relay(context.Background(), "How much water should I drink?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Status != "ok" || reply.Text != NoCredentialReply {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestRelay_CompleterFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limited", ErrUpstreamRateLimited, RateLimitedReply},
		{"wrapped rate limit", errors.Join(errors.New("outer"), ErrUpstreamRateLimited), RateLimitedReply},
		{"status error", &UpstreamStatusError{StatusCode: 500}, UnavailableReply},
		{"network error", errors.New("dial tcp: connection refused"), UnavailableReply},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubCompleter{err: tc.err}
			reply, err := NewChatRelay(stub).Relay(context.Background(), "hello")
			if err != nil {
				t.Fatalf("expected fallback instead of error, got %v", err)
			}
			if reply.Status != "ok" || reply.Text != tc.want {
				t.Fatalf("unexpected reply: %+v", reply)
			}
			if stub.calls != 1 {
				t.Fatalf("expected exactly one upstream call, got %d", stub.calls)
			}
		})
	}
}

func TestFallbackRepliesAreDistinct(t *testing.T) {
	if NoCredentialReply == RateLimitedReply || RateLimitedReply == UnavailableReply || NoCredentialReply == UnavailableReply {
		t.Fatalf("fallback replies must differ per failure kind")
	}
}

func TestOpenAICompleter_PassesReplyThrough(t *testing.T) {
	var got openai.ChatCompletionRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Drink water."}}]}`))
	}))
	defer srv.Close()

	relay := NewChatRelay(NewOpenAICompleter("sk-test", srv.URL, "gpt-test", srv.Client()))
	reply, err := relay.Relay(context.Background(), "Any tips?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Status != "ok" || reply.Text != "Drink water." {
		t.Fatalf("expected verbatim upstream text, got %+v", reply)
	}

	if auth != "Bearer sk-test" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
	if got.Model != "gpt-test" || got.MaxTokens != 500 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != ChatSystemPrompt {
		t.Fatalf("unexpected system message: %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "Any tips?" {
		t.Fatalf("unexpected user message: %+v", got.Messages[1])
	}
}

func TestOpenAICompleter_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"429", http.StatusTooManyRequests, `{"error":{"message":"slow down","code":"rate_limit_exceeded"}}`, RateLimitedReply},
		{"429 without error body", http.StatusTooManyRequests, `Too Many Requests`, RateLimitedReply},
		{"500", http.StatusInternalServerError, `{"error":{"message":"boom","code":"internal_error"}}`, UnavailableReply},
		{"401", http.StatusUnauthorized, `{"error":{"message":"bad key","code":"invalid_api_key"}}`, UnavailableReply},
		{"malformed body", http.StatusOK, `not json`, UnavailableReply},
		{"no choices", http.StatusOK, `{"choices":[]}`, UnavailableReply},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			relay := NewChatRelay(NewOpenAICompleter("sk-test", srv.URL, "gpt-test", srv.Client()))
			reply, err := relay.Relay(context.Background(), "hi")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply.Text != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, reply.Text)
			}
		})
	}
}

func TestMapOpenAIError(t *testing.T) {
	if err := mapOpenAIError(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}); !errors.Is(err, ErrUpstreamRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	if err := mapOpenAIError(&openai.RequestError{HTTPStatusCode: http.StatusTooManyRequests}); !errors.Is(err, ErrUpstreamRateLimited) {
		t.Fatalf("expected rate limit for request error, got %v", err)
	}

	var statusErr *UpstreamStatusError
	if err := mapOpenAIError(&openai.APIError{HTTPStatusCode: http.StatusBadGateway, Message: "bad gateway"}); !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status error 502, got %v", err)
	}
	var transportErr *UpstreamStatusError
	if err := mapOpenAIError(errors.New("dial tcp")); errors.As(err, &transportErr) {
		t.Fatalf("transport errors should not become status errors, got %v", err)
	}
}

func TestChatBaseURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", DefaultChatAPIURL},
		{"https://api.openai.com/v1/chat/completions", "https://api.openai.com/v1"},
		{"http://localhost:11434/v1/", "http://localhost:11434/v1"},
	}
	for _, tc := range tests {
		if got := chatBaseURL(tc.in); got != tc.want {
			t.Errorf("chatBaseURL(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestOpenAICompleter_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reply, err := NewChatRelay(NewOpenAICompleter("sk-test", url, "gpt-test", nil)).Relay(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != UnavailableReply {
		t.Fatalf("expected unavailable fallback, got %q", reply.Text)
	}
}

func TestIsGeminiRateLimited(t *testing.T) {
	rateLimited, ok := apierror.FromError(&googleapi.Error{Code: http.StatusTooManyRequests})
	if !ok {
		t.Fatalf("expected googleapi error to wrap")
	}
	if !isGeminiRateLimited(rateLimited) {
		t.Fatalf("expected 429 to be classified as rate limited")
	}

	serverErr, _ := apierror.FromError(&googleapi.Error{Code: http.StatusInternalServerError})
	if isGeminiRateLimited(serverErr) {
		t.Fatalf("expected 500 not to be rate limited")
	}
	if isGeminiRateLimited(errors.New("plain")) {
		t.Fatalf("expected plain error not to be rate limited")
	}
}

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{nil, FailureNone},
		{ErrNoMessage, FailureInputInvalid},
		{ErrUpstreamRateLimited, FailureRateLimited},
		{&UpstreamStatusError{StatusCode: 503}, FailureUpstream},
	}
	for _, tc := range tests {
		if got := classifyFailure(tc.err); got != tc.want {
			t.Errorf("classifyFailure(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
