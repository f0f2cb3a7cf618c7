// Package ai wraps the Gemini REST API behind the two advisory features the
// dashboard offers. Both calls degrade to fixed apology strings on any
// failure; the caller never sees an error.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

const (
	analysisApology = "Failed to generate AI analysis."
	searchApology   = "Failed to search locations."
)

type Client struct {
	APIKey  string
	BaseURL string
	Model   string

	HTTPClient *http.Client
}

func New(env config.Env) *Client {
	return &Client{
		APIKey:     env.GeminiAPIKey,
		BaseURL:    strings.TrimRight(env.GeminiBaseURL, "/"),
		Model:      env.GeminiModel,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Suggestion is one grounded place result from a location search.
type Suggestion struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// FleetAnalysis asks for recommendations over the current fleet, schedules
// and booking volume.
func (c *Client) FleetAnalysis(ctx context.Context, buses []models.Bus, schedules []models.Schedule, bookingCount int) string {
	type busSummary struct {
		PlateNumber string `json:"plateNumber"`
		Capacity    int    `json:"capacity"`
	}
	summaries := make([]busSummary, 0, len(buses))
	for _, b := range buses {
		summaries = append(summaries, busSummary{PlateNumber: b.PlateNumber, Capacity: b.Capacity})
	}
	busJSON, _ := json.Marshal(summaries)
	scheduleJSON, _ := json.Marshal(schedules)

	prompt := fmt.Sprintf(`You are an expert University Transport Manager AI for BGC Trust University.
Analyze the following data and provide 3 key insights/recommendations to improve efficiency (e.g., add more buses to a route, change timing).
Keep it concise and professional.

Data:
Buses: %s
Schedules: %s
Total Bookings Count: %d`, busJSON, scheduleJSON, bookingCount)

	text, _, err := c.generate(ctx, prompt, false)
	if err != nil {
		log.Printf("fleet analysis failed: %v", err)
		return analysisApology
	}
	if strings.TrimSpace(text) == "" {
		return "No analysis generated."
	}
	return text
}

// SearchLocations resolves a free-text place query, grounded to the
// Chittagong region, into advice text plus verifiable map links.
func (c *Client) SearchLocations(ctx context.Context, query string, lat, lng float64) (string, []Suggestion) {
	prompt := fmt.Sprintf(`Find accurate locations or addresses for %q specifically within Chittagong, Bangladesh for a university bus route. Give me a concise list of 3-5 verified places.`, query)
	if lat != 0 || lng != 0 {
		prompt += fmt.Sprintf(" The requester is near latitude %.6f, longitude %.6f.", lat, lng)
	}

	text, suggestions, err := c.generate(ctx, prompt, true)
	if err != nil {
		log.Printf("location search failed: %v", err)
		return searchApology, []Suggestion{}
	}
	if strings.TrimSpace(text) == "" {
		text = "No locations found."
	}
	return text, suggestions
}

// --- wire types ----------------------------------------------------------

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleMaps struct{} `json:"googleMaps"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Maps *struct {
					Title string `json:"title"`
					URI   string `json:"uri"`
				} `json:"maps"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string, withMaps bool) (string, []Suggestion, error) {
	if c.APIKey == "" {
		return "", nil, fmt.Errorf("gemini api key not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if withMaps {
		reqBody.Tools = []tool{{}}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, err
	}
	if len(parsed.Candidates) == 0 {
		return "", nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	suggestions := []Suggestion{}
	for _, chunk := range parsed.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Maps == nil {
			continue
		}
		suggestions = append(suggestions, Suggestion{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
	}
	return sb.String(), suggestions, nil
}
