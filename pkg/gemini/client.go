// Package gemini is a minimal client for the Gemini generateContent REST API,
// used to transcribe short audio chunks into timestamped segments.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 5 * time.Minute
)

// transcriptionPrompt asks for machine-readable output. The model does not
// always comply, so parsing has a plain-text fallback.
const transcriptionPrompt = `Transcribe this audio recording. Respond with a JSON array of segments, ` +
	`each an object with "start" and "end" in seconds (numbers) and "text" (string). ` +
	`Respond with the JSON array only, no markdown and no commentary.`

// Segment is one timestamped span of transcribed speech, in seconds relative
// to the start of the full audio track.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Client calls the Gemini API over HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithModel overrides the default model
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Gemini API client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request/response shapes for generateContent. Only the fields we use.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// TranscribeChunk sends one audio chunk for transcription and returns its
// segments translated into full-track time. chunkStart and chunkDuration are
// the chunk's position within the original audio, in seconds.
//
// When the model ignores the JSON instruction the whole response text becomes
// a single segment spanning the chunk. That is a successful, if coarse,
// transcription rather than an error.
func (c *Client) TranscribeChunk(ctx context.Context, audio []byte, chunkStart, chunkDuration float64) ([]Segment, error) {
	text, err := c.generateContent(ctx, audio)
	if err != nil {
		return nil, err
	}

	segments, ok := parseSegmentArray(text)
	if !ok {
		fallback := stripCodeFences(text)
		if fallback == "" {
			return nil, fmt.Errorf("%w: empty transcription for chunk at %.3fs", ErrEmptyResponse, chunkStart)
		}
		segments = []Segment{{Start: 0, End: chunkDuration, Text: fallback}}
	}

	for i := range segments {
		segments[i].Start += chunkStart
		segments[i].End += chunkStart
	}

	return segments, nil
}

func (c *Client) generateContent(ctx context.Context, audio []byte) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: transcriptionPrompt},
				{InlineData: &inlineData{
					MimeType: "audio/mp3",
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var out bytes.Buffer
	for _, p := range parsed.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}

	return out.String(), nil
}
