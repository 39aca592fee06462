package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type UploadDocumentResponse struct {
	SessionId           uuid.UUID `json:"session_id"`
	FileSearchStoreName string    `json:"file_search_store_name"`
	UploadedFilename    string    `json:"uploaded_filename"`
	Readiness           string    `json:"readiness"`
	// Warning is set when the import was not confirmed within the wait
	// budget and the session proceeds optimistically.
	Warning string `json:"warning,omitempty"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

type AskResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	// AnswerSource tells where the answer text was extracted from:
	// "candidates", "output" or "raw".
	AnswerSource string `json:"answer_source"`
}

type ExchangeDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SessionStateResponse is the read-only debug view of one session.
type SessionStateResponse struct {
	Id                  uuid.UUID     `json:"id"`
	FileSearchStoreName string        `json:"file_search_store_name"`
	UploadedFilename    string        `json:"uploaded_filename"`
	Readiness           string        `json:"readiness"`
	ConversationHistory []ExchangeDTO `json:"conversation_history"`
}

// SessionEventMessage is the payload exchanged on the internal session
// events topic between the chat service and the event consumer.
type SessionEventMessage struct {
	Type       string                 `json:"type"`
	SessionId  string                 `json:"session_id"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
