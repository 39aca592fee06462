package mapper

import (
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/pkg/store"

	"github.com/google/uuid"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToExchangeDTOs(history []store.Exchange) []dto.ExchangeDTO {
	exchanges := make([]dto.ExchangeDTO, 0, len(history))
	for _, ex := range history {
		exchanges = append(exchanges, dto.ExchangeDTO{
			Question: ex.Question,
			Answer:   ex.Answer,
		})
	}
	return exchanges
}

func (m *SessionMapper) ToStateResponse(state store.SessionState) *dto.SessionStateResponse {
	id, err := uuid.Parse(state.ID)
	if err != nil {
		id = uuid.Nil
	}
	return &dto.SessionStateResponse{
		Id:                  id,
		FileSearchStoreName: state.FileSearchStoreName,
		UploadedFilename:    state.UploadedFilename,
		Readiness:           string(state.Readiness),
		ConversationHistory: m.ToExchangeDTOs(state.History),
	}
}
