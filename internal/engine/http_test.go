package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/today", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 4, "clue": "It lifts heavy loads"})
	})
	mux.HandleFunc("/api/guess", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ID    int    `json:"id"`
			Guess string `json:"guess"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.ID != 4 {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid puzzle."})
			return
		}
		correct := strings.EqualFold(strings.TrimSpace(req.Guess), "crane")
		_ = json.NewEncoder(w).Encode(map[string]bool{"correct": correct})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// TestAPIClientToday checks fetching the daily puzzle.
func TestAPIClientToday(t *testing.T) {
	srv := newFakeServer(t)
	api := NewAPIClient(srv.URL)

	id, clue, err := api.Today(context.Background())
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if id != 4 || clue == "" {
		t.Errorf("Today = (%d, %q), want id 4 with a clue", id, clue)
	}
}

// TestAPIClientVerify checks guess submission over HTTP.
func TestAPIClientVerify(t *testing.T) {
	srv := newFakeServer(t)
	api := NewAPIClient(srv.URL + "/") // trailing slash must be tolerated

	correct, err := api.Verify(context.Background(), 4, " Crane ")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !correct {
		t.Error("Verify( Crane ) = false, want true")
	}

	correct, err = api.Verify(context.Background(), 4, "stone")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if correct {
		t.Error("Verify(stone) = true, want false")
	}
}

// TestAPIClientErrors checks non-200 and transport failures surface as
// errors so the engine leaves state untouched.
func TestAPIClientErrors(t *testing.T) {
	srv := newFakeServer(t)
	api := NewAPIClient(srv.URL)

	if _, err := api.Verify(context.Background(), 999, "crane"); err == nil {
		t.Error("Verify with unknown id did not fail")
	}

	srv.Close()
	if _, err := api.Verify(context.Background(), 4, "crane"); err == nil {
		t.Error("Verify against a dead server did not fail")
	}
	if _, _, err := api.Today(context.Background()); err == nil {
		t.Error("Today against a dead server did not fail")
	}
}

// TestAPIClientAsEngineVerifier checks the full path: transport failure
// leaves the engine session unmutated and retryable.
func TestAPIClientAsEngineVerifier(t *testing.T) {
	srv := newFakeServer(t)
	api := NewAPIClient(srv.URL)

	eng := New(api, NewMemoryStore(), 0)
	eng.LoadToday(todayCrane())

	out, err := eng.SubmitGuess(context.Background(), "stone")
	if err != nil {
		t.Fatalf("SubmitGuess over HTTP failed: %v", err)
	}
	if out.Correct {
		t.Error("stone verified as correct")
	}

	out, err = eng.SubmitGuess(context.Background(), "crane")
	if err != nil {
		t.Fatalf("SubmitGuess over HTTP failed: %v", err)
	}
	if !out.Correct || out.Status != StatusWon {
		t.Errorf("crane outcome = %+v, want a win", out)
	}
}
