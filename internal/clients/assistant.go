package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AssistantClient proxies chat prompts to the conversational assistant
// webhook and returns its reply text.
type AssistantClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewAssistantClient(endpoint string) *AssistantClient {
	return &AssistantClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type assistantRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

func (a *AssistantClient) Ask(ctx context.Context, prompt, sessionId string) (string, error) {
	if a.endpoint == "" {
		return "", fmt.Errorf("assistant webhook is not configured")
	}

	body, err := json.Marshal(assistantRequest{Prompt: prompt, SessionID: sessionId})
	if err != nil {
		return "", fmt.Errorf("failed to encode assistant request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build assistant request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant webhook unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant webhook returned status %d", resp.StatusCode)
	}

	var out assistantResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode assistant reply: %v", err)
	}

	return out.Reply, nil
}
