package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/pkg/events"
	"ai-docchat-be/pkg/genai"
	"ai-docchat-be/pkg/rag/prompt"
	"ai-docchat-be/pkg/store"
	"ai-docchat-be/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotReady     = errors.New("no document has been imported into this session yet")
	ErrMissingAPIKey       = errors.New("gemini api key is required")
	ErrEmptyQuestion       = errors.New("question must not be empty")
	ErrNoFile              = errors.New("a document file is required")
	ErrUnsupportedFileType = errors.New("unsupported document type")

	// ErrUpstream wraps failures coming back from the generative API so the
	// transport layer can map them to 502 instead of 500.
	ErrUpstream = errors.New("generative api request failed")
)

// ImportUnconfirmedWarning is returned with the upload response when the
// import operation did not report completion inside the wait budget.
const ImportUnconfirmedWarning = "Upload operation did not report completion within the app's wait period. " +
	"The file may still be importing in the background. You can try to ask questions; the store may become available shortly."

// IChatService defines the document chat service interface
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	UploadDocument(ctx context.Context, apiKey string, sessionId uuid.UUID, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	Ask(ctx context.Context, apiKey string, sessionId uuid.UUID, request *dto.AskRequest) (*dto.AskResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) ([]dto.ExchangeDTO, error)
	GetSessionState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

// chatService orchestrates session state, prompt building and the
// generative API round trips.
type chatService struct {
	sessionRepo      contract.SessionRepository
	genaiClient      *genai.Client
	publisherService IPublisherService
	sessionMapper    *mapper.SessionMapper
	logger           logger.ILogger

	fallbackAPIKey string
	pollInterval   time.Duration
	maxWait        time.Duration
}

func NewChatService(
	sessionRepo contract.SessionRepository,
	genaiClient *genai.Client,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
	fallbackAPIKey string,
	pollInterval time.Duration,
	maxWait time.Duration,
) IChatService {
	return &chatService{
		sessionRepo:      sessionRepo,
		genaiClient:      genaiClient,
		publisherService: publisherService,
		sessionMapper:    mapper.NewSessionMapper(),
		logger:           sysLogger,
		fallbackAPIKey:   fallbackAPIKey,
		pollInterval:     pollInterval,
		maxWait:          maxWait,
	}
}

// CreateSession creates a new empty chat session
func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	session := store.NewSession(id.String())

	if err := cs.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	cs.logger.Info("CHAT", "Session created", map[string]interface{}{"session_id": id.String()})
	cs.publishEvent(ctx, events.TypeSessionCreated, id.String(), nil)

	return &dto.CreateSessionResponse{Id: id}, nil
}

// UploadDocument creates a file search store, imports the document into it
// and waits for the import operation to complete. When the wait budget runs
// out before completion the session is still marked usable, with a warning.
func (cs *chatService) UploadDocument(ctx context.Context, apiKey string, sessionId uuid.UUID, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	apiKey = cs.resolveAPIKey(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if filename == "" || len(data) == 0 {
		return nil, ErrNoFile
	}

	mimeType, ok := utils.MimeTypeForFilename(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
	}

	session, found, err := cs.sessionRepo.Get(ctx, sessionId.String())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	displayName := utils.DisplayNameFromFilename(filename)

	fileSearchStore, err := cs.genaiClient.CreateFileSearchStore(ctx, apiKey, displayName)
	if err != nil {
		return nil, fmt.Errorf("%w: create file search store: %v", ErrUpstream, err)
	}

	op, err := cs.genaiClient.UploadToFileSearchStore(ctx, apiKey, fileSearchStore.Name, displayName, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: upload document: %v", ErrUpstream, err)
	}

	confirmed, err := cs.genaiClient.WaitForImport(ctx, apiKey, op, cs.pollInterval, cs.maxWait)
	if err != nil {
		// Only context cancellation surfaces here.
		return nil, err
	}

	res := &dto.UploadDocumentResponse{
		SessionId:           sessionId,
		FileSearchStoreName: fileSearchStore.Name,
		UploadedFilename:    filename,
	}

	if confirmed {
		session.ResetForNewDocument(fileSearchStore.Name, filename)
		res.Readiness = string(store.ReadinessReady)

		cs.logger.Info("CHAT", "Document imported", map[string]interface{}{
			"session_id":             sessionId.String(),
			"file_search_store_name": fileSearchStore.Name,
			"filename":               filename,
		})
		cs.publishEvent(ctx, events.TypeDocumentImported, sessionId.String(), map[string]interface{}{
			"file_search_store_name": fileSearchStore.Name,
			"filename":               filename,
		})
	} else {
		session.MarkReadyUnconfirmed(fileSearchStore.Name, filename)
		res.Readiness = string(store.ReadinessUnconfirmed)
		res.Warning = ImportUnconfirmedWarning

		cs.logger.Warn("CHAT", "Document import not confirmed within wait budget", map[string]interface{}{
			"session_id":             sessionId.String(),
			"file_search_store_name": fileSearchStore.Name,
			"filename":               filename,
			"max_wait":               cs.maxWait.String(),
		})
		cs.publishEvent(ctx, events.TypeDocumentImportUnconfirmed, sessionId.String(), map[string]interface{}{
			"file_search_store_name": fileSearchStore.Name,
			"filename":               filename,
		})
	}

	if err := cs.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return res, nil
}

// Ask builds the two-section prompt from the session history, runs file
// search grounded generation and records the exchange.
func (cs *chatService) Ask(ctx context.Context, apiKey string, sessionId uuid.UUID, request *dto.AskRequest) (*dto.AskResponse, error) {
	apiKey = cs.resolveAPIKey(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(request.Question) == "" {
		return nil, ErrEmptyQuestion
	}

	session, found, err := cs.sessionRepo.Get(ctx, sessionId.String())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	if !session.IsReady() || session.FileSearchStoreName() == "" {
		return nil, ErrSessionNotReady
	}

	promptText := prompt.NewConversationBuilder(session.History(), request.Question).Build()

	generateRes, err := cs.genaiClient.GenerateWithFileSearch(ctx, apiKey, session.FileSearchStoreName(), promptText)
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %v", ErrUpstream, err)
	}

	answer := genai.ExtractAnswer(generateRes)

	// A raw fallback is shown to the caller but never becomes part of the
	// next prompt's history.
	if answer.Source != genai.AnswerSourceRaw {
		session.RecordExchange(request.Question, answer.Text)
		if err := cs.sessionRepo.Save(ctx, session); err != nil {
			return nil, err
		}
		cs.publishEvent(ctx, events.TypeExchangeRecorded, sessionId.String(), map[string]interface{}{
			"answer_source": string(answer.Source),
			"history_size":  len(session.History()),
		})
	} else {
		cs.logger.Warn("CHAT", "Unrecognized generate response shape, returning raw body", map[string]interface{}{
			"session_id": sessionId.String(),
		})
	}

	return &dto.AskResponse{
		SessionId:    sessionId,
		Question:     request.Question,
		Answer:       answer.Text,
		AnswerSource: string(answer.Source),
	}, nil
}

// GetHistory returns the recorded question/answer exchanges of a session
func (cs *chatService) GetHistory(ctx context.Context, sessionId uuid.UUID) ([]dto.ExchangeDTO, error) {
	session, found, err := cs.sessionRepo.Get(ctx, sessionId.String())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return cs.sessionMapper.ToExchangeDTOs(session.History()), nil
}

// GetSessionState returns the full persisted state of a session
func (cs *chatService) GetSessionState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	session, found, err := cs.sessionRepo.Get(ctx, sessionId.String())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return cs.sessionMapper.ToStateResponse(session.Snapshot()), nil
}

// DeleteSession removes a session from the store
func (cs *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	_, found, err := cs.sessionRepo.Get(ctx, sessionId.String())
	if err != nil {
		return err
	}
	if !found {
		return ErrSessionNotFound
	}

	if err := cs.sessionRepo.Delete(ctx, sessionId.String()); err != nil {
		return err
	}

	cs.logger.Info("CHAT", "Session deleted", map[string]interface{}{"session_id": sessionId.String()})
	cs.publishEvent(ctx, events.TypeSessionDeleted, sessionId.String(), nil)
	return nil
}

func (cs *chatService) resolveAPIKey(apiKey string) string {
	if apiKey != "" {
		return apiKey
	}
	return cs.fallbackAPIKey
}

// publishEvent pushes a session event onto the internal topic. Event
// delivery is auxiliary, a failure never fails the request.
func (cs *chatService) publishEvent(ctx context.Context, eventType, sessionID string, extra map[string]interface{}) {
	evt := events.NewSessionEvent(eventType, sessionID, extra)

	msg := dto.SessionEventMessage{
		Type:       evt.EventType(),
		SessionId:  sessionID,
		Payload:    evt.Payload(),
		OccurredAt: evt.Timestamp(),
	}

	msgJson, err := json.Marshal(msg)
	if err != nil {
		cs.logger.Warn("CHAT", "Failed to marshal session event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
		return
	}

	if err := cs.publisherService.Publish(ctx, msgJson); err != nil {
		cs.logger.Warn("CHAT", "Failed to publish session event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
