package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/ibeckermayer/syndicate/internal/types"
)

// snapThreshold is the minimum Jaro-Winkler similarity for SnapCategory
const snapThreshold = 0.85

// endTokens are chat-template markers some local models leak into their output
var endTokens = []string{"<|eot_id|>", "<|end_of_text|>", "<|im_end|>", "<|endoftext|>", "</s>"}

var (
	fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	firstArray  = regexp.MustCompile(`(?s)\[.*?\]`)
)

// StripEndTokens removes end-of-turn markers and surrounding whitespace
func StripEndTokens(s string) string {
	for _, tok := range endTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.TrimSpace(s)
}

// ParseCategories extracts a JSON array of category names from raw model output.
// Anything it cannot read yields the default category; it never fails.
func ParseCategories(raw string) []string {
	s := StripEndTokens(raw)

	if cats := decodeArray(s); len(cats) > 0 {
		return cats
	}
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		if cats := decodeArray(strings.TrimSpace(m[1])); len(cats) > 0 {
			return cats
		}
	}
	if m := firstArray.FindString(s); m != "" {
		if cats := decodeArray(m); len(cats) > 0 {
			return cats
		}
	}

	return []string{string(types.DefaultCategory)}
}

func decodeArray(s string) []string {
	var items []any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			continue
		}
		if str = strings.TrimSpace(str); str != "" {
			out = append(out, str)
		}
	}
	return out
}

// SnapCategory maps a model-produced name onto one of known, tolerating case
// differences and small misspellings.
func SnapCategory(candidate string, known []string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", false
	}

	best, bestScore := "", 0.0
	for _, k := range known {
		if strings.EqualFold(candidate, k) {
			return k, true
		}
		score := matchr.JaroWinkler(strings.ToLower(candidate), strings.ToLower(k), false)
		if score > bestScore {
			best, bestScore = k, score
		}
	}
	if bestScore >= snapThreshold {
		return best, true
	}
	return "", false
}

// ResolveCategory picks the first parsed category that is a known Category
func ResolveCategory(raw string) types.Category {
	for _, c := range ParseCategories(raw) {
		if name, ok := SnapCategory(c, types.CategoryNames()); ok {
			return types.Category(name)
		}
	}
	return types.DefaultCategory
}
