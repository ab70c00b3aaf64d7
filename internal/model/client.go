package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"govtrader/internal/types"
)

// Client talks to the model server hosting the regression models and the
// summarizer. One Client serves all three contracts; the direction-specific
// predictors are thin views over it.
type Client struct {
	http *resty.Client
}

var (
	_ SentimentScorer = (*Client)(nil)
	_ Summarizer      = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http}
}

type textRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *Client) Score(ctx context.Context, text string) (types.SentimentLabel, float64, error) {
	var out sentimentResponse
	if err := c.post(ctx, "/sentiment", text, &out); err != nil {
		return "", 0, err
	}
	label := types.SentimentLabel(strings.ToLower(strings.TrimSpace(out.Label)))
	switch label {
	case types.SentimentPositive, types.SentimentNegative, types.SentimentNeutral:
	default:
		return "", 0, fmt.Errorf("model server: unknown sentiment label %q", out.Label)
	}
	if out.Score < 0 || out.Score > 1 {
		return "", 0, fmt.Errorf("model server: score %v out of range", out.Score)
	}
	return label, out.Score, nil
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	var out summaryResponse
	if err := c.post(ctx, "/summarize", text, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", fmt.Errorf("model server: empty summary")
	}
	return out.Summary, nil
}

type targetResponse struct {
	TargetPercent float64 `json:"target_percent"`
}

// directionPredictor binds a Client to one regression head.
type directionPredictor struct {
	client *Client
	path   string
}

var _ PricePredictor = (*directionPredictor)(nil)

func (d *directionPredictor) PredictTargetPercent(ctx context.Context, text string) (float64, error) {
	var out targetResponse
	if err := d.client.post(ctx, d.path, text, &out); err != nil {
		return 0, err
	}
	return out.TargetPercent, nil
}

// BullishPredictor targets the regression head trained on positive moves.
func (c *Client) BullishPredictor() PricePredictor {
	return &directionPredictor{client: c, path: "/predict/bullish"}
}

// BearishPredictor targets the head trained on drawdowns.
func (c *Client) BearishPredictor() PricePredictor {
	return &directionPredictor{client: c, path: "/predict/bearish"}
}

func (c *Client) post(ctx context.Context, path, text string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(textRequest{Text: text}).
		SetResult(out).
		Post(path)
	if err != nil {
		return fmt.Errorf("model server %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("model server %s: status=%d body=%s", path, resp.StatusCode(), resp.String())
	}
	return nil
}
