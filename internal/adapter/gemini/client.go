// package gemini is a thin REST client for the problem-generating LLM
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/config"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

var _ secondary.ProblemGenerator = (*Client)(nil)

const (
	problemPromptTemplate = "Generate %d SQL analysis problems for an e-commerce dataset " +
		"(track: %s). Respond with a JSON array only; every element must have the fields " +
		"problem_id, title, difficulty (easy|medium|hard), topic, question and answer_sql. " +
		"answer_sql must be a single read-only PostgreSQL SELECT statement."

	hintPromptTemplate = "A learner submitted an incorrect SQL answer. Explain what is " +
		"likely wrong, kindly and without giving away the full solution.\n\nProblem: %s\n" +
		"Reference SQL: %s\nSubmitted SQL: %s"
)

// Client implements the ProblemGenerator interface against the Gemini
// REST API.
type Client struct {
	cfg        *config.GeminiConfig
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new Gemini client
func NewClient(cfg *config.GeminiConfig, logger primary.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateProblems asks the model for n problems and decodes its JSON
// answer.
func (c *Client) GenerateProblems(ctx context.Context, category domain.Category, n int) ([]domain.Problem, error) {
	prompt := fmt.Sprintf(problemPromptTemplate, n, category)
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	problems, err := decodeProblems(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated problems: %w", err)
	}
	return problems, nil
}

// Hint explains an incorrect submission. The problem may be nil when
// its daily document has already been cleaned up.
func (c *Client) Hint(ctx context.Context, problem *domain.Problem, submittedSQL string) (string, error) {
	question, answerSQL := "(unknown)", "(unknown)"
	if problem != nil {
		question, answerSQL = problem.Question, problem.AnswerSQL
	}
	return c.generate(ctx, fmt.Sprintf(hintPromptTemplate, question, answerSQL, submittedSQL))
}

// generate performs one generateContent call and returns the first
// candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Gemini returned non-200", "status", resp.StatusCode)
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(data))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// decodeProblems tolerates the model wrapping its JSON in a markdown
// code fence.
func decodeProblems(text string) ([]domain.Problem, error) {
	payload := stripCodeFence(text)

	var problems []domain.Problem
	if err := json.Unmarshal([]byte(payload), &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
