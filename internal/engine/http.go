package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIClient talks to the puzzle server. It implements Verifier, so a
// transport failure surfaces as an error and the engine leaves the
// session untouched for a retry.
type APIClient struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIClient returns an APIClient for the given base URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type todayResponse struct {
	ID   int    `json:"id"`
	Clue string `json:"clue"`
}

type guessRequest struct {
	ID    int    `json:"id"`
	Guess string `json:"guess"`
}

type guessResponse struct {
	Correct bool `json:"correct"`
}

// Today fetches the id and clue of the daily puzzle.
func (a *APIClient) Today(ctx context.Context) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/api/today", nil)
	if err != nil {
		return 0, "", err
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("today request failed: %s", resp.Status)
	}
	var tr todayResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return 0, "", err
	}
	return tr.ID, tr.Clue, nil
}

// Verify submits a guess for the given puzzle id.
func (a *APIClient) Verify(ctx context.Context, id int, guess string) (bool, error) {
	body, err := json.Marshal(guessRequest{ID: id, Guess: guess})
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/api/guess", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("guess request failed: %s", resp.Status)
	}
	var gr guessResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return false, err
	}
	return gr.Correct, nil
}
