package prompt

import (
	"strings"

	"ai-docchat-be/pkg/store"
)

// Preamble instructs the model to read the earlier turns before answering
// the current question. It is the first line of every built prompt.
const Preamble = "There are 2 sections in this. Previously asked and currently asking. While answering you need to check the previously asked then answer the query that is present in the currently asking section."

// Section headers, in the order they appear in the prompt.
const (
	SectionPreviouslyAsked = "PREVIOUSLY_ASKED:"
	SectionCurrentlyAsking = "CURRENTLY_ASKING:"
)

// ConversationBuilder builds the two-section prompt that carries the
// conversation history alongside the current question.
type ConversationBuilder struct {
	history  []store.Exchange
	question string
}

// NewConversationBuilder creates a prompt builder for one ask turn.
func NewConversationBuilder(history []store.Exchange, question string) *ConversationBuilder {
	return &ConversationBuilder{
		history:  history,
		question: question,
	}
}

// Build assembles the prompt. The layout is fixed: preamble, the
// PREVIOUSLY_ASKED section with one Q/A block per recorded exchange, then
// the CURRENTLY_ASKING section with the raw question.
func (b *ConversationBuilder) Build() string {
	var prompt strings.Builder

	b.writePreamble(&prompt)
	b.writePreviouslyAsked(&prompt)
	b.writeCurrentlyAsking(&prompt)

	return prompt.String()
}

func (b *ConversationBuilder) writePreamble(prompt *strings.Builder) {
	prompt.WriteString(Preamble)
	prompt.WriteString("\n")
}

func (b *ConversationBuilder) writePreviouslyAsked(prompt *strings.Builder) {
	prompt.WriteString(SectionPreviouslyAsked)
	prompt.WriteString("\n\n")

	blocks := make([]string, 0, len(b.history))
	for _, exchange := range b.history {
		q := strings.TrimSpace(exchange.Question)
		a := strings.TrimSpace(exchange.Answer)
		if q == "" && a == "" {
			continue
		}
		blocks = append(blocks, "Q: "+q+"\nA: "+a)
	}

	prompt.WriteString(strings.Join(blocks, "\n"))
	prompt.WriteString("\n\n")
}

func (b *ConversationBuilder) writeCurrentlyAsking(prompt *strings.Builder) {
	prompt.WriteString(SectionCurrentlyAsking)
	prompt.WriteString("\n")
	prompt.WriteString(b.question)
}
