package models

// ChatRequest is the payload sent to the chat endpoint. The relay keeps no
// history; each request is a single turn.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is always returned with Status "ok", even when Text is a canned fallback.
type ChatReply struct {
	Status string `json:"status"`
	Text   string `json:"text"`
}

const ChatStatusOK = "ok"
