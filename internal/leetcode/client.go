package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
)

const DefaultEndpoint = "https://leetcode.com/graphql"

const questionDifficultyQuery = `
query getQuestionDetail($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    difficulty
  }
}`

type Client struct {
	httpClient *http.Client
	endpoint   string
	log        *logger.Logger
}

func New(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		log:        logger.Default().WithPrefix("leetcode"),
	}
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type questionResponse struct {
	Data struct {
		Question *struct {
			Difficulty string `json:"difficulty"`
		} `json:"question"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchDifficulty asks LeetCode for the published difficulty of the problem at problemURL.
// It fails when the URL has no problem slug or LeetCode answers with anything but Easy, Medium or Hard.
func (c *Client) FetchDifficulty(ctx context.Context, problemURL string) (models.Difficulty, error) {
	slug := problem.Slug(problemURL)
	if slug == "" {
		return models.DifficultyUnknown, fmt.Errorf("%w: %s", ErrInvalidProblemURL, problemURL)
	}
	log := logger.FromContext(ctx).WithPrefix("leetcode").WithField("slug", slug)

	body, err := json.Marshal(graphQLRequest{
		OperationName: "getQuestionDetail",
		Query:         questionDifficultyQuery,
		Variables:     map[string]any{"titleSlug": slug},
	})
	if err != nil {
		return models.DifficultyUnknown, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return models.DifficultyUnknown, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com/problems/"+slug+"/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; lanki/1.0)")

	log.Debug("fetching difficulty")
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch difficulty: %v", err)
		return models.DifficultyUnknown, err
	}
	defer resp.Body.Close()

	log.Debug("difficulty response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("difficulty request failed: status=%d, body=%s", resp.StatusCode, string(snippet))
		return models.DifficultyUnknown, fmt.Errorf("graphql status %d: %s", resp.StatusCode, string(snippet))
	}

	var out questionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode difficulty response: %v", err)
		return models.DifficultyUnknown, err
	}
	if len(out.Errors) > 0 {
		return models.DifficultyUnknown, fmt.Errorf("graphql error: %s", out.Errors[0].Message)
	}
	if out.Data.Question == nil {
		return models.DifficultyUnknown, fmt.Errorf("%w: no question for slug %q", ErrUnknownDifficulty, slug)
	}

	switch d := out.Data.Question.Difficulty; d {
	case "Easy":
		return models.Easy, nil
	case "Medium":
		return models.Medium, nil
	case "Hard":
		return models.Hard, nil
	default:
		log.Warn("unknown difficulty level received: %q", d)
		return models.DifficultyUnknown, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
}
