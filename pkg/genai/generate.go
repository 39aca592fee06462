package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type GeneratePart struct {
	Text string `json:"text"`
}

type GenerateContent struct {
	Parts []*GeneratePart `json:"parts"`
	Role  string          `json:"role,omitempty"`
}

type FileSearchTool struct {
	FileSearchStoreNames []string `json:"file_search_store_names"`
}

type GenerateTool struct {
	FileSearch *FileSearchTool `json:"file_search,omitempty"`
}

type GenerateRequest struct {
	Contents []*GenerateContent `json:"contents"`
	Tools    []*GenerateTool    `json:"tools,omitempty"`
}

type GenerateCandidate struct {
	Content *GenerateContent `json:"content"`
}

// GenerateResponse is the decoded generate payload. Raw keeps the undecoded
// body for the extraction fallback.
type GenerateResponse struct {
	Candidates []*GenerateCandidate `json:"candidates"`
	Output     string               `json:"output,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// AnswerSource names which part of the response an answer was extracted from.
type AnswerSource string

const (
	AnswerSourceCandidates AnswerSource = "candidates"
	AnswerSourceOutput     AnswerSource = "output"
	AnswerSourceRaw        AnswerSource = "raw"
)

// Answer is the extracted model reply plus where it came from. A raw-source
// answer is the undecoded response body: displayable, but not a model reply.
type Answer struct {
	Text   string
	Source AnswerSource
}

// GenerateWithFileSearch asks the configured model one question with the
// File Search tool scoped to a single store.
func (c *Client) GenerateWithFileSearch(
	ctx context.Context,
	apiKey string,
	fileSearchStoreName string,
	promptText string,
) (*GenerateResponse, error) {
	payload := GenerateRequest{
		Contents: []*GenerateContent{
			{
				Parts: []*GeneratePart{
					{
						Text: promptText,
					},
				},
				Role: RoleUser,
			},
		},
		Tools: []*GenerateTool{
			{
				FileSearch: &FileSearchTool{
					FileSearchStoreNames: []string{fileSearchStoreName},
				},
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model),
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var generateRes GenerateResponse
	err = json.Unmarshal(resBody, &generateRes)
	if err != nil {
		return nil, err
	}
	generateRes.Raw = resBody

	return &generateRes, nil
}

// ExtractAnswer pulls the reply out of a generate response in priority
// order: the text parts of the first candidate, then the legacy top-level
// output field, then the raw payload as a last resort.
func ExtractAnswer(res *GenerateResponse) Answer {
	if res == nil {
		return Answer{Source: AnswerSourceRaw}
	}

	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		var texts []string
		for _, part := range res.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
		if len(texts) > 0 {
			return Answer{
				Text:   strings.Join(texts, ""),
				Source: AnswerSourceCandidates,
			}
		}
	}

	if res.Output != "" {
		return Answer{
			Text:   res.Output,
			Source: AnswerSourceOutput,
		}
	}

	return Answer{
		Text:   string(res.Raw),
		Source: AnswerSourceRaw,
	}
}
