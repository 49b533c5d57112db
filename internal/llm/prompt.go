package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// CategoryInput is what the classifier sees about the publisher and its content
type CategoryInput struct {
	BusinessContext string
	WebsiteURL      string
	Title           string
	Description     string
	Tags            []string
}

// CategoryPrompt builds the classification chat
func CategoryPrompt(in CategoryInput, categories []string) []Message {
	var sb strings.Builder

	sb.WriteString("Classify the following business and content into the most relevant categories.\n\n")
	if in.BusinessContext != "" {
		sb.WriteString("## Business\n")
		sb.WriteString(in.BusinessContext)
		sb.WriteString("\n\n")
	}
	sb.WriteString("## Content\n")
	if in.WebsiteURL != "" {
		sb.WriteString(fmt.Sprintf("Website: %s\n", in.WebsiteURL))
	}
	if in.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", in.Title))
	}
	if in.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", in.Description))
	}
	if len(in.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(in.Tags, ", ")))
	}

	system := fmt.Sprintf(
		"You are a content classifier. Allowed categories: %s. "+
			"Respond with ONLY a JSON array of one to three category names, most relevant first, e.g. [\"Technology\", \"News\"].",
		strings.Join(categories, ", "))

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: sb.String()},
	}
}

// CommentInput describes the post being answered
type CommentInput struct {
	AuthorName      string
	PostText        string
	Category        string
	BusinessContext string
	RelatedLink     string
}

// CommentPrompt builds the comment-generation chat
func CommentPrompt(in CommentInput) []Message {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Write a LinkedIn comment replying to this %s post", in.Category))
	if in.AuthorName != "" {
		sb.WriteString(fmt.Sprintf(" by %s", in.AuthorName))
	}
	sb.WriteString(".\n\n## Post\n")
	sb.WriteString(in.PostText)
	sb.WriteString("\n\n## Guidelines\n")
	sb.WriteString("- 2 to 4 sentences, conversational and specific to the post\n")
	sb.WriteString("- No hashtags, no emojis, no greeting\n")
	if in.BusinessContext != "" {
		sb.WriteString(fmt.Sprintf("- Speak from the perspective of: %s\n", in.BusinessContext))
	}
	if in.RelatedLink != "" {
		sb.WriteString(fmt.Sprintf("- Naturally reference this resource once: %s\n", in.RelatedLink))
	}
	sb.WriteString("\nRespond with the comment text only.")

	return []Message{
		{Role: RoleSystem, Content: "You are a thoughtful professional who writes concise, genuine LinkedIn comments."},
		{Role: RoleUser, Content: sb.String()},
	}
}

var commentLabel = regexp.MustCompile(`(?i)^\s*(comment|response|reply)\s*:\s*`)

// CleanCompletion strips end tokens, a leading label and wrapping quotes
func CleanCompletion(s string) string {
	s = StripEndTokens(s)
	s = commentLabel.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
