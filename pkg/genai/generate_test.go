package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithFileSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("x-goog-api-key"))

		var body GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Equal(t, "what is this about?", body.Contents[0].Parts[0].Text)
		assert.Equal(t, RoleUser, body.Contents[0].Role)
		require.Len(t, body.Tools, 1)
		require.NotNil(t, body.Tools[0].FileSearch)
		assert.Equal(t, []string{"fileSearchStores/abc123"}, body.Tools[0].FileSearch.FileSearchStoreNames)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"It is a report."}],"role":"model"}}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	res, err := client.GenerateWithFileSearch(
		context.Background(),
		"key-123",
		"fileSearchStores/abc123",
		"what is this about?",
	)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "It is a report.", res.Candidates[0].Content.Parts[0].Text)
	assert.NotEmpty(t, res.Raw)
}

func TestGenerateWithFileSearchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	_, err := client.GenerateWithFileSearch(context.Background(), "key-123", "fileSearchStores/abc123", "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got status 503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestExtractAnswer(t *testing.T) {
	tests := []struct {
		name       string
		res        *GenerateResponse
		wantText   string
		wantSource AnswerSource
	}{
		{
			name: "candidate parts joined in order",
			res: &GenerateResponse{
				Candidates: []*GenerateCandidate{
					{
						Content: &GenerateContent{
							Parts: []*GeneratePart{
								{Text: "It is "},
								{Text: "a report."},
							},
						},
					},
				},
			},
			wantText:   "It is a report.",
			wantSource: AnswerSourceCandidates,
		},
		{
			name: "output field when candidates are empty",
			res: &GenerateResponse{
				Output: "answer from output",
			},
			wantText:   "answer from output",
			wantSource: AnswerSourceOutput,
		},
		{
			name: "output field when candidate has no text",
			res: &GenerateResponse{
				Candidates: []*GenerateCandidate{
					{Content: &GenerateContent{Parts: []*GeneratePart{{Text: ""}}}},
				},
				Output: "fallback",
			},
			wantText:   "fallback",
			wantSource: AnswerSourceOutput,
		},
		{
			name: "raw payload when nothing is recognized",
			res: &GenerateResponse{
				Raw: json.RawMessage(`{"unexpected":"shape"}`),
			},
			wantText:   `{"unexpected":"shape"}`,
			wantSource: AnswerSourceRaw,
		},
		{
			name:       "nil response",
			res:        nil,
			wantText:   "",
			wantSource: AnswerSourceRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := ExtractAnswer(tt.res)
			assert.Equal(t, tt.wantText, answer.Text)
			assert.Equal(t, tt.wantSource, answer.Source)
		})
	}
}
