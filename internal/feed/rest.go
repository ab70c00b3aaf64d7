package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"govtrader/internal/config"
	"govtrader/internal/types"
)

func init() {
	Register("rest", func(cfg config.FeedConfig) (Provider, error) {
		return newRestProvider(cfg)
	})
}

// restProvider polls an HTTP endpoint that serves the same proposal shape
// the scraper stores. Useful when the bot runs off-box from the scraper
// database.
var _ Provider = (*restProvider)(nil)

type restProvider struct {
	url    string
	client *resty.Client
}

type restProposal struct {
	Protocol       string    `json:"protocol"`
	PostID         string    `json:"post_id"`
	Description    string    `json:"description"`
	DiscussionLink string    `json:"discussion_link"`
	CreatedAt      time.Time `json:"created_at"`
}

func newRestProvider(cfg config.FeedConfig) (*restProvider, error) {
	if cfg.RestURL == "" {
		return nil, fmt.Errorf("feed: rest provider needs an endpoint URL")
	}
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)
	return &restProvider{url: cfg.RestURL, client: client}, nil
}

func (p *restProvider) Connect(ctx context.Context) error { return nil }

func (p *restProvider) Disconnect(ctx context.Context) error { return nil }

func (p *restProvider) FetchRecent(ctx context.Context, limit int) ([]types.Proposal, error) {
	var docs []restProposal
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&docs).
		Get(p.url)
	if err != nil {
		return nil, fmt.Errorf("feed: rest fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed: rest fetch: status %d", resp.StatusCode())
	}

	proposals := make([]types.Proposal, 0, len(docs))
	for _, d := range docs {
		proposals = append(proposals, types.Proposal{
			Protocol:       d.Protocol,
			PostID:         d.PostID,
			Description:    cleanDescription(d.Description),
			DiscussionLink: d.DiscussionLink,
			CreatedAt:      d.CreatedAt,
		})
	}
	return proposals, nil
}

func (p *restProvider) KnownPostIDs(ctx context.Context) (map[string]struct{}, error) {
	const knownIDsLimit = 500
	docs, err := p.FetchRecent(ctx, knownIDsLimit)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		ids[d.PostID] = struct{}{}
	}
	return ids, nil
}
