package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

const (
	remoteRequestTimeout = 30 * time.Second

	turnPath   = "/v1/turn"
	choicePath = "/v1/choice"
)

// RemoteProvider implements NarrativeProvider against a hosted narrative
// generation API.
type RemoteProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ NarrativeProvider = (*RemoteProvider)(nil)

// TurnRequest is the wire format for requesting a dialogue turn.
type TurnRequest struct {
	EntityID  string `json:"entity_id"`
	Context   string `json:"context"`
	RequestID string `json:"request_id"`
}

// TurnResponse is the wire format for a generated dialogue turn.
type TurnResponse struct {
	Turn    *dialogue.Turn            `json:"turn"`
	Options []dialogue.ResponseOption `json:"options"`
	Error   string                    `json:"error,omitempty"`
}

// ChoiceReport is the wire format for reporting a selected response.
type ChoiceReport struct {
	EntityID string                  `json:"entity_id"`
	Context  string                  `json:"context"`
	Chosen   dialogue.ResponseOption `json:"chosen"`
}

// NewRemoteProvider creates a provider that calls the narrative API at baseURL.
func NewRemoteProvider(baseURL, apiKey string, logger *slog.Logger) *RemoteProvider {
	return &RemoteProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: remoteRequestTimeout,
		},
		logger: logger,
	}
}

func (p *RemoteProvider) RequestTurn(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
	reqBody := TurnRequest{
		EntityID:  entityID,
		Context:   convContext,
		RequestID: uuid.New().String(),
	}

	var resp TurnResponse
	if err := p.post(ctx, turnPath, reqBody, &resp); err != nil {
		p.logger.Warn("Narrative API turn request failed",
			"entity_id", entityID,
			"context", convContext,
			"request_id", reqBody.RequestID,
			"error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.Error != "" {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Error)
	}
	if resp.Turn == nil || resp.Turn.Body == "" {
		return nil, nil, fmt.Errorf("%w: empty turn in response", ErrUnavailable)
	}
	if err := dialogue.ValidateOptions(resp.Options); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return resp.Turn, resp.Options, nil
}

func (p *RemoteProvider) ReportChoice(ctx context.Context, entityID, convContext string, chosen dialogue.ResponseOption) error {
	report := ChoiceReport{
		EntityID: entityID,
		Context:  convContext,
		Chosen:   chosen,
	}

	if err := p.post(ctx, choicePath, report, nil); err != nil {
		p.logger.Warn("Narrative API choice report failed",
			"entity_id", entityID,
			"context", convContext,
			"error", err)
		return err
	}
	return nil
}

// post sends a JSON request and decodes the JSON response into out (if non-nil).
func (p *RemoteProvider) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
