package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Model:      "gemini-2.5-flash",
		HTTPClient: server.Client(),
	}
}

func TestFleetAnalysisReturnsModelText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header missing")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Add a second bus on the GEC route."}]}}]}`))
	}))
	defer server.Close()

	c := testClient(server)
	got := c.FleetAnalysis(context.Background(), []models.Bus{{PlateNumber: "CTG-1122", Capacity: 40}}, nil, 12)
	if got != "Add a second bus on the GEC route." {
		t.Fatalf("unexpected analysis: %q", got)
	}
}

func TestFleetAnalysisDegradesToApology(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := testClient(server)
	if got := c.FleetAnalysis(context.Background(), nil, nil, 0); got != analysisApology {
		t.Fatalf("expected apology on failure, got %q", got)
	}
}

func TestFleetAnalysisWithoutKeyApologizes(t *testing.T) {
	c := &Client{}
	if got := c.FleetAnalysis(context.Background(), nil, nil, 0); got != analysisApology {
		t.Fatalf("expected apology without api key, got %q", got)
	}
}

func TestSearchLocationsParsesGroundedSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{
			"content":{"parts":[{"text":"Two well-known stops near GEC."}]},
			"groundingMetadata":{"groundingChunks":[
				{"maps":{"title":"GEC Circle","uri":"https://maps.example/gec"}},
				{"maps":null}
			]}
		}]}`))
	}))
	defer server.Close()

	c := testClient(server)
	text, suggestions := c.SearchLocations(context.Background(), "GEC", 0, 0)
	if text != "Two well-known stops near GEC." {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(suggestions) != 1 || suggestions[0].Title != "GEC Circle" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}
}

func TestSearchLocationsDegradesToApology(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testClient(server)
	text, suggestions := c.SearchLocations(context.Background(), "anything", 0, 0)
	if text != searchApology {
		t.Fatalf("expected apology, got %q", text)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions on failure, got %+v", suggestions)
	}
}
