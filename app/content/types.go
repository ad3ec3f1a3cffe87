package content

import (
	"time"
)

// Tier is the priority bucket an item lands in after classification.
type Tier string

const (
	TierMustRead    Tier = "must_read"
	TierRecommended Tier = "recommended"
	TierFYI         Tier = "fyi"
	TierSkip        Tier = "skip"
)

// Item is the normalized unit flowing through the pipeline. Collectors
// produce it, the cleaner/deduplicator/classifier transform it, and the
// storage and digest layers consume it.
type Item struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	Source      string     `json:"source,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Category    string     `json:"category,omitempty"`

	// Derived by the pipeline
	ContentHash     string `json:"content_hash,omitempty"`
	URLHash         string `json:"url_hash,omitempty"`
	TitleHash       string `json:"title_hash,omitempty"`
	Score           int    `json:"score"`
	Tier            Tier   `json:"tier,omitempty"`
	Topic           string `json:"topic,omitempty"`
	Summary         string `json:"summary,omitempty"`
	RelevanceReason string `json:"relevance_reason,omitempty"`
	Actionable      bool   `json:"actionable,omitempty"`
	Skip            bool   `json:"skip,omitempty"`
	MatchedKeyword  string `json:"matched_keyword,omitempty"`
}
