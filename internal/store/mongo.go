package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ibeckermayer/syndicate/internal/types"
)

// Mongo is the production Repository
type Mongo struct {
	client   *mongo.Client
	posts    *mongo.Collection
	comments *mongo.Collection
}

// NewMongo connects, pings and ensures indexes
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	m := &Mongo{
		client:   client,
		posts:    db.Collection(PostsCollection),
		comments: db.Collection(CommentsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "backend_urn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}, {Key: "priority", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", PostsCollection, err)
	}

	_, err = m.comments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "commentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "postId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CommentsCollection, err)
	}
	return nil
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// SavePost upserts a post keyed by backend_urn
func (m *Mongo) SavePost(ctx context.Context, p *types.LinkedInPost) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = types.PostStatusPending
	}

	_, err := m.posts.ReplaceOne(ctx,
		bson.D{{Key: "backend_urn", Value: p.BackendURN}},
		p,
		options.Replace().SetUpsert(true),
	)
	return err
}

// PostByURN loads one post
func (m *Mongo) PostByURN(ctx context.Context, urn string) (*types.LinkedInPost, error) {
	var p types.LinkedInPost
	err := m.posts.FindOne(ctx, bson.D{{Key: "backend_urn", Value: urn}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CandidatePosts returns commentable posts in category
func (m *Mongo) CandidatePosts(ctx context.Context, category types.Category, limit int) ([]types.LinkedInPost, error) {
	filter := bson.D{
		{Key: "category", Value: category},
		{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{types.PostStatusPending, types.PostStatusActive}}}},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var posts []types.LinkedInPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// HasUserCommented uses the (userId, postId) index
func (m *Mongo) HasUserCommented(ctx context.Context, userID, postID string) (bool, error) {
	n, err := m.comments.CountDocuments(ctx,
		bson.D{{Key: "userId", Value: userID}, {Key: "postId", Value: postID}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveComment inserts a comment record
func (m *Mongo) SaveComment(ctx context.Context, c *types.LinkedInComment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := m.comments.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// CommentsByUser returns the newest comments by userID
func (m *Mongo) CommentsByUser(ctx context.Context, userID string, limit int) ([]types.LinkedInComment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.comments.Find(ctx, bson.D{{Key: "userId", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}

	var comments []types.LinkedInComment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
