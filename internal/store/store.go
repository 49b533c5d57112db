// Package store persists the LinkedIn posts that can receive comments and the
// comments already posted.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/types"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Collection names
const (
	PostsCollection    = "linkedin_posts"
	CommentsCollection = "linkedin_comments"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Repository is implemented by the Mongo and SQLite backends
type Repository interface {
	// SavePost inserts or replaces a post keyed by BackendURN
	SavePost(ctx context.Context, p *types.LinkedInPost) error
	PostByURN(ctx context.Context, urn string) (*types.LinkedInPost, error)
	// CandidatePosts returns pending or active posts in category, highest priority first
	CandidatePosts(ctx context.Context, category types.Category, limit int) ([]types.LinkedInPost, error)
	HasUserCommented(ctx context.Context, userID, postID string) (bool, error)
	// SaveComment fails with ErrDuplicate when CommentID already exists
	SaveComment(ctx context.Context, c *types.LinkedInComment) error
	CommentsByUser(ctx context.Context, userID string, limit int) ([]types.LinkedInComment, error)
	Close(ctx context.Context) error
}

// Open creates the repository selected by cfg.Driver
func Open(ctx context.Context, cfg config.StoreConfig) (Repository, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
}
