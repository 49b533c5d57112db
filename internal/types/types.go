package types

import (
	"strings"
	"time"
)

// Category is a coarse content classification shared by websites, LLM output and stored posts
type Category string

const (
	CategoryTechnology    Category = "Technology"
	CategoryBusiness      Category = "Business"
	CategoryMarketing     Category = "Marketing"
	CategoryFinance       Category = "Finance"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryNews          Category = "News"
	CategoryEntertainment Category = "Entertainment"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryScience       Category = "Science"
	CategorySports        Category = "Sports"
	CategoryGeneral       Category = "General"
)

// DefaultCategory is used whenever classification yields nothing usable
const DefaultCategory = CategoryGeneral

// Categories lists every valid Category
var Categories = []Category{
	CategoryTechnology, CategoryBusiness, CategoryMarketing, CategoryFinance,
	CategoryHealth, CategoryEducation, CategoryNews, CategoryEntertainment,
	CategoryLifestyle, CategoryScience, CategorySports, CategoryGeneral,
}

// CategoryNames returns Categories as strings
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// ParseCategory matches s case-insensitively against Categories
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}

// Post lifecycle values set by the scraper that feeds linkedin_posts
const (
	PostStatusPending   = "pending"
	PostStatusActive    = "active"
	PostStatusCommented = "commented"
	PostStatusArchived  = "archived"
)

// EngagementData holds the counters captured when the post was scraped
type EngagementData struct {
	Likes    int `json:"likes" bson:"likes" db:"likes"`
	Comments int `json:"comments" bson:"comments" db:"comments"`
	Reposts  int `json:"reposts" bson:"reposts" db:"reposts"`
}

// LinkedInPost is a scraped LinkedIn post that may receive a comment
type LinkedInPost struct {
	BackendURN     string         `json:"backend_urn" bson:"backend_urn" db:"backend_urn"`
	AuthorName     string         `json:"author_name" bson:"author_name" db:"author_name"`
	PostText       string         `json:"post_text" bson:"post_text" db:"post_text"`
	ShareURL       string         `json:"share_url" bson:"share_url" db:"share_url"`
	Category       Category       `json:"category" bson:"category" db:"category"`
	Status         string         `json:"status" bson:"status" db:"status"`
	Priority       int            `json:"priority" bson:"priority" db:"priority"`
	EngagementData EngagementData `json:"engagement_data" bson:"engagement_data" db:"engagement"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at" db:"created_at"`
}

// LinkedInComment records a comment this system posted
type LinkedInComment struct {
	CommentID   string    `json:"commentId" bson:"commentId" db:"comment_id"`
	UserID      string    `json:"userId" bson:"userId" db:"user_id"`
	PostID      string    `json:"postId" bson:"postId" db:"post_id"`
	CommentText string    `json:"commentText" bson:"commentText" db:"comment_text"`
	Category    Category  `json:"category" bson:"category" db:"category"`
	PostedURL   string    `json:"postedUrl" bson:"postedUrl" db:"posted_url"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}
