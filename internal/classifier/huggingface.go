package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultModel is the zero-shot model used when none is configured.
	DefaultModel = "facebook/bart-large-mnli"

	huggingFaceBaseURL = "https://api-inference.huggingface.co/models"
	hypothesisTemplate = "The transaction is related to {}."
)

var errNoPrediction = errors.New("no prediction in response")

// HuggingFaceClient calls the Hugging Face inference API for zero-shot
// classification.
type HuggingFaceClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
	model      string
}

// NewHuggingFaceClient creates a client. An empty model selects DefaultModel
// and an empty baseURL the public inference endpoint.
func NewHuggingFaceClient(httpClient *http.Client, apiKey, model, baseURL string) *HuggingFaceClient {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = huggingFaceBaseURL
	}
	return &HuggingFaceClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	MultiClass         bool     `json:"multi_class"`
	HypothesisTemplate string   `json:"hypothesis_template"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// The API answers either with a list of {label, score} or with parallel
// labels/scores arrays.
type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Error  string    `json:"error"`
}

// Classify sends description with the candidate labels and returns the
// best-scoring label.
func (h *HuggingFaceClient) Classify(ctx context.Context, description, txType string, labels []string) (Result, error) {
	payload := zeroShotRequest{
		Inputs: fmt.Sprintf("Transaction type: %s\nDescription: %s", txType, description),
		Parameters: zeroShotParameters{
			CandidateLabels:    labels,
			MultiClass:         false,
			HypothesisTemplate: hypothesisTemplate,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encoding classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+h.model, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building classification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("classification request for %s: %w", h.model, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("classification request for %s: unexpected status %d", h.model, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("decoding classification response: %w", err)
	}

	predictions, err := parsePredictions(raw)
	if err != nil {
		return Result{}, err
	}

	best, ok := bestPrediction(predictions)
	if !ok {
		return Result{}, errNoPrediction
	}
	return Result{Category: best.Label, Confidence: best.Score, Source: SourceHuggingFace}, nil
}

func parsePredictions(raw json.RawMessage) ([]labelScore, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errNoPrediction
	}

	if trimmed[0] == '[' {
		var list []labelScore
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decoding label list: %w", err)
		}
		return list, nil
	}

	var resp zeroShotResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("decoding label arrays: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("classification service error: %s", resp.Error)
	}

	list := make([]labelScore, 0, len(resp.Labels))
	for i, label := range resp.Labels {
		var score float64
		if i < len(resp.Scores) {
			score = resp.Scores[i]
		}
		list = append(list, labelScore{Label: label, Score: score})
	}
	return list, nil
}

func bestPrediction(predictions []labelScore) (labelScore, bool) {
	var best labelScore
	found := false
	for _, p := range predictions {
		if p.Label == "" {
			continue
		}
		if !found || p.Score > best.Score {
			best = p
			found = true
		}
	}
	return best, found
}
