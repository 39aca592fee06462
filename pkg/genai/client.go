package genai

import (
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the public Gemini REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is the model used to answer document questions with the
	// File Search tool.
	DefaultModel = "gemini-2.5-flash-preview-09-2025"
)

// Message roles accepted by the generate endpoint.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Client talks to the Gemini File Search REST surface. The API key is passed
// per call; it belongs to the caller, not the client.
type Client struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClient creates a client against the given base URL and model. Empty
// values fall back to the public endpoint and the default model.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Model:      model,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
