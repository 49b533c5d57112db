package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/types"
)

// SQLite is the embedded Repository used for local runs and tests
type SQLite struct {
	db *sqlx.DB
}

// DefaultSQLitePath returns the database location under the config dir
func DefaultSQLitePath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "syndicate.db"), nil
}

// NewSQLite opens (and migrates) the database at dbPath. ":memory:" is accepted.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *SQLite) Close(context.Context) error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS linkedin_posts (
		backend_urn TEXT PRIMARY KEY,
		author_name TEXT NOT NULL DEFAULT '',
		post_text TEXT NOT NULL,
		share_url TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		priority INTEGER NOT NULL DEFAULT 0,
		likes INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		reposts INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS linkedin_comments (
		comment_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		post_id TEXT NOT NULL,
		comment_text TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		posted_url TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_posts_candidates ON linkedin_posts(category, status, priority DESC);
	CREATE INDEX IF NOT EXISTS idx_comments_user_post ON linkedin_comments(user_id, post_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

type postRow struct {
	BackendURN string    `db:"backend_urn"`
	AuthorName string    `db:"author_name"`
	PostText   string    `db:"post_text"`
	ShareURL   string    `db:"share_url"`
	Category   string    `db:"category"`
	Status     string    `db:"status"`
	Priority   int       `db:"priority"`
	Likes      int       `db:"likes"`
	Comments   int       `db:"comments"`
	Reposts    int       `db:"reposts"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r postRow) post() types.LinkedInPost {
	return types.LinkedInPost{
		BackendURN: r.BackendURN,
		AuthorName: r.AuthorName,
		PostText:   r.PostText,
		ShareURL:   r.ShareURL,
		Category:   types.Category(r.Category),
		Status:     r.Status,
		Priority:   r.Priority,
		EngagementData: types.EngagementData{
			Likes:    r.Likes,
			Comments: r.Comments,
			Reposts:  r.Reposts,
		},
		CreatedAt: r.CreatedAt,
	}
}

const postColumns = `backend_urn, author_name, post_text, share_url, category, status,
	priority, likes, comments, reposts, created_at`

// SavePost inserts or updates a post
func (s *SQLite) SavePost(ctx context.Context, p *types.LinkedInPost) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = types.PostStatusPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO linkedin_posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(backend_urn) DO UPDATE SET
			author_name = excluded.author_name,
			post_text = excluded.post_text,
			share_url = excluded.share_url,
			category = excluded.category,
			status = excluded.status,
			priority = excluded.priority,
			likes = excluded.likes,
			comments = excluded.comments,
			reposts = excluded.reposts
	`, p.BackendURN, p.AuthorName, p.PostText, p.ShareURL, string(p.Category), p.Status,
		p.Priority, p.EngagementData.Likes, p.EngagementData.Comments, p.EngagementData.Reposts, p.CreatedAt)

	return err
}

// PostByURN loads one post
func (s *SQLite) PostByURN(ctx context.Context, urn string) (*types.LinkedInPost, error) {
	var row postRow
	err := s.db.GetContext(ctx, &row, `SELECT `+postColumns+` FROM linkedin_posts WHERE backend_urn = ?`, urn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := row.post()
	return &p, nil
}

// CandidatePosts returns commentable posts in category
func (s *SQLite) CandidatePosts(ctx context.Context, category types.Category, limit int) ([]types.LinkedInPost, error) {
	var rows []postRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+postColumns+`
		FROM linkedin_posts
		WHERE category = ? AND status IN (?, ?)
		ORDER BY priority DESC, created_at ASC
		LIMIT ?
	`, string(category), types.PostStatusPending, types.PostStatusActive, limit)
	if err != nil {
		return nil, err
	}

	posts := make([]types.LinkedInPost, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.post())
	}
	return posts, nil
}

// HasUserCommented checks the (user_id, post_id) index
func (s *SQLite) HasUserCommented(ctx context.Context, userID, postID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM linkedin_comments WHERE user_id = ? AND post_id = ?)`,
		userID, postID).Scan(&exists)
	return exists, err
}

// SaveComment inserts a comment record
func (s *SQLite) SaveComment(ctx context.Context, c *types.LinkedInComment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO linkedin_comments (comment_id, user_id, post_id, comment_text, category, posted_url, created_at)
		VALUES (:comment_id, :user_id, :post_id, :comment_text, :category, :posted_url, :created_at)
	`, c)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

// CommentsByUser returns the newest comments by userID
func (s *SQLite) CommentsByUser(ctx context.Context, userID string, limit int) ([]types.LinkedInComment, error) {
	var comments []types.LinkedInComment
	err := s.db.SelectContext(ctx, &comments, `
		SELECT comment_id, user_id, post_id, comment_text, category, posted_url, created_at
		FROM linkedin_comments
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	return comments, err
}
