package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRemoteProvider_RequestTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != turnPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var req TurnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.EntityID != "lyra_novastella" || req.Context != "greeting" {
			t.Errorf("unexpected request %+v", req)
		}
		if req.RequestID == "" {
			t.Error("expected a request id")
		}

		resp := TurnResponse{
			Turn: &dialogue.Turn{Speaker: "Captain Lyra Novastella", Body: "Welcome aboard, traveler."},
			Options: []dialogue.ResponseOption{
				{Label: "Tell me about your ship.", NextContext: "ship_tour"},
				{Label: "Farewell.", EndsConversation: true},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	p := NewRemoteProvider(server.URL, "test-key", testLogger())

	turn, options, err := p.RequestTurn(context.Background(), "lyra_novastella", "greeting")
	if err != nil {
		t.Fatalf("RequestTurn failed: %v", err)
	}
	if turn.Speaker != "Captain Lyra Novastella" {
		t.Errorf("unexpected speaker %q", turn.Speaker)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if !options[1].EndsConversation {
		t.Error("expected second option to end the conversation")
	}
}

func TestRemoteProvider_RequestTurn_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
		},
		{
			name: "api-level error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(TurnResponse{Error: "model overloaded"}) //nolint:errcheck
			},
		},
		{
			name: "empty turn",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(TurnResponse{}) //nolint:errcheck
			},
		},
		{
			name: "invalid option set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(TurnResponse{ //nolint:errcheck
					Turn:    &dialogue.Turn{Speaker: "X", Body: "hello"},
					Options: []dialogue.ResponseOption{{Label: "continue without destination"}},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			p := NewRemoteProvider(server.URL, "", testLogger())
			_, _, err := p.RequestTurn(context.Background(), "blip", "greeting")
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}

func TestRemoteProvider_ReportChoice(t *testing.T) {
	var received ChoiceReport
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != choicePath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewRemoteProvider(server.URL, "", testLogger())
	chosen := dialogue.ResponseOption{Label: "I accept the mission.", NextContext: "mission_briefing"}

	if err := p.ReportChoice(context.Background(), "lyra_novastella", "quest_offer", chosen); err != nil {
		t.Fatalf("ReportChoice failed: %v", err)
	}
	if received.EntityID != "lyra_novastella" || received.Context != "quest_offer" {
		t.Errorf("unexpected report %+v", received)
	}
	if received.Chosen.Label != chosen.Label {
		t.Errorf("unexpected chosen option %+v", received.Chosen)
	}
}
