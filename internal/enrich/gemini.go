package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"reeltrivia/internal/config"
)

// GeminiClient asks a generative text endpoint for facts the structured
// movie databases don't carry, currently production start and end dates.
type GeminiClient struct {
	cfg    config.EnrichConfig
	client *http.Client
}

func NewGeminiClient(cfg config.EnrichConfig) *GeminiClient {
	return &GeminiClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// GenerateContent sends a single-part text prompt and returns the first
// candidate's text, empty when the response carries none.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.cfg.GeminiBaseURL, c.cfg.GeminiModel, c.cfg.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

var (
	productionStartRe = regexp.MustCompile(`(?i)production start:?\s*(\d{4}-\d{2}-\d{2})`)
	productionEndRe   = regexp.MustCompile(`(?i)production end:?\s*(\d{4}-\d{2}-\d{2})`)
	anyDateRe         = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// ProductionDates asks for the filming start and end dates of a movie and
// parses them from the free-text answer. Either date may come back empty.
func (c *GeminiClient) ProductionDates(ctx context.Context, imdbID, title, year string) (start, end string, err error) {
	prompt := fmt.Sprintf(
		`What are the production start and end dates for the movie %q (%s) with IMDb ID %s? `+
			`Please provide the dates in YYYY-MM-DD format. For example: `+
			`"Production Start: 1999-01-18; Production End: 2000-05-07". `+
			`If you can only find the month and year, use the first day of the month. `+
			`If there are multiple filming periods, provide the start of the first period and the end of the last period.`,
		title, year, imdbID)

	text, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return "", "", err
	}
	start, end = ParseProductionDates(text)
	return start, end, nil
}

// ParseProductionDates extracts the labeled dates from a model answer,
// falling back to the first and last bare dates in the text.
func ParseProductionDates(text string) (start, end string) {
	if m := productionStartRe.FindStringSubmatch(text); m != nil {
		start = m[1]
	}
	if m := productionEndRe.FindStringSubmatch(text); m != nil {
		end = m[1]
	}
	if start == "" || end == "" {
		if dates := anyDateRe.FindAllString(text, -1); len(dates) > 0 {
			if start == "" {
				start = dates[0]
			}
			if end == "" {
				end = dates[len(dates)-1]
			}
		}
	}
	return start, end
}
