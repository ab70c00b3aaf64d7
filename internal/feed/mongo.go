package feed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"govtrader/internal/config"
	"govtrader/internal/logger"
	"govtrader/internal/types"
)

func init() {
	Register("mongodb", func(cfg config.FeedConfig) (Provider, error) {
		return newMongoProvider(cfg)
	})
}

// mongoProvider reads the proposal collection the scraper pipeline writes
// into. The document shape is fixed by that pipeline; renaming a field here
// breaks the contract.
var _ Provider = (*mongoProvider)(nil)

type mongoProvider struct {
	uri        string
	database   string
	collection string
	client     *mongo.Client
}

type mongoProposal struct {
	Protocol       string    `bson:"protocol"`
	PostID         string    `bson:"post_id"`
	Description    string    `bson:"description"`
	DiscussionLink string    `bson:"discussion_link"`
	CreatedAt      time.Time `bson:"created_at"`
}

func newMongoProvider(cfg config.FeedConfig) (*mongoProvider, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("feed: mongodb provider needs a connection URI")
	}
	return &mongoProvider{
		uri:        cfg.MongoURI,
		database:   cfg.MongoDB,
		collection: cfg.MongoColl,
	}, nil
}

func (p *mongoProvider) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.uri))
	if err != nil {
		return fmt.Errorf("feed: mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("feed: mongodb ping: %w", err)
	}
	p.client = client
	logger.Infof("feed: connected to mongodb, collection %s.%s", p.database, p.collection)
	return nil
}

func (p *mongoProvider) Disconnect(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(ctx)
	p.client = nil
	return err
}

func (p *mongoProvider) FetchRecent(ctx context.Context, limit int) ([]types.Proposal, error) {
	if p.client == nil {
		return nil, fmt.Errorf("feed: mongodb provider not connected")
	}
	coll := p.client.Database(p.database).Collection(p.collection)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("feed: mongodb find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProposal
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("feed: mongodb decode: %w", err)
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

func (p *mongoProvider) KnownPostIDs(ctx context.Context) (map[string]struct{}, error) {
	if p.client == nil {
		return nil, fmt.Errorf("feed: mongodb provider not connected")
	}
	coll := p.client.Database(p.database).Collection(p.collection)
	raw, err := coll.Distinct(ctx, "post_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("feed: mongodb distinct post_id: %w", err)
	}
	ids := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids[s] = struct{}{}
		}
	}
	return ids, nil
}
