package store

import "sync"

// Exchange is one completed question/answer turn.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Readiness tells whether a session may accept questions, and with what
// confidence the document import finished.
type Readiness string

const (
	// ReadinessNone means no document has been attached yet.
	ReadinessNone Readiness = ""
	// ReadinessReady means the import operation reported done.
	ReadinessReady Readiness = "READY"
	// ReadinessUnconfirmed means the wait budget ran out (or polling was
	// abandoned) and the session proceeds optimistically.
	ReadinessUnconfirmed Readiness = "READY_UNCONFIRMED"
)

// Session represents the active conversation state for one uploaded document.
// All access goes through methods; the zero readiness rejects questions until
// a document lands.
type Session struct {
	mu sync.RWMutex

	id                  string
	fileSearchStoreName string
	uploadedFilename    string
	readiness           Readiness
	history             []Exchange
}

// SessionState is a point-in-time copy of a Session, safe to serialize and
// hand across API boundaries.
type SessionState struct {
	ID                  string     `json:"id"`
	FileSearchStoreName string     `json:"file_search_store_name"`
	UploadedFilename    string     `json:"uploaded_filename"`
	Readiness           Readiness  `json:"readiness"`
	History             []Exchange `json:"conversation_history"`
}

// NewSession creates an empty session with no document attached.
func NewSession(id string) *Session {
	return &Session{id: id}
}

// FromState rebuilds a Session from a serialized snapshot.
func FromState(state SessionState) *Session {
	history := make([]Exchange, len(state.History))
	copy(history, state.History)
	return &Session{
		id:                  state.ID,
		fileSearchStoreName: state.FileSearchStoreName,
		uploadedFilename:    state.UploadedFilename,
		readiness:           state.Readiness,
		history:             history,
	}
}

func (s *Session) ID() string {
	return s.id
}

// ResetForNewDocument binds the session to a freshly imported document and
// clears the conversation history. Call it only when the import is confirmed
// done; history from an earlier document must not leak into the new one.
func (s *Session) ResetForNewDocument(fileSearchStoreName, uploadedFilename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileSearchStoreName = fileSearchStoreName
	s.uploadedFilename = uploadedFilename
	s.readiness = ReadinessReady
	s.history = nil
}

// MarkReadyUnconfirmed binds the session to a document whose import was not
// confirmed within the wait budget. History is kept as-is: the session only
// resets on a confirmed import or on creation.
func (s *Session) MarkReadyUnconfirmed(fileSearchStoreName, uploadedFilename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileSearchStoreName = fileSearchStoreName
	s.uploadedFilename = uploadedFilename
	s.readiness = ReadinessUnconfirmed
}

// RecordExchange appends one question/answer pair to the history.
func (s *Session) RecordExchange(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Exchange{Question: question, Answer: answer})
}

// IsReady reports whether the session accepts questions. Both confirmed and
// unconfirmed readiness qualify; the caller can inspect Readiness() when the
// distinction matters.
func (s *Session) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readiness == ReadinessReady || s.readiness == ReadinessUnconfirmed
}

func (s *Session) Readiness() Readiness {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readiness
}

func (s *Session) FileSearchStoreName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fileSearchStoreName
}

func (s *Session) UploadedFilename() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploadedFilename
}

// History returns a copy of the recorded exchanges in insertion order.
func (s *Session) History() []Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make([]Exchange, len(s.history))
	copy(history, s.history)
	return history
}

// Snapshot captures the full session state under one lock acquisition.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make([]Exchange, len(s.history))
	copy(history, s.history)
	return SessionState{
		ID:                  s.id,
		FileSearchStoreName: s.fileSearchStoreName,
		UploadedFilename:    s.uploadedFilename,
		Readiness:           s.readiness,
		History:             history,
	}
}
