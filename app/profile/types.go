package profile

// Profile is the user-facing configuration: what to track, what to drop,
// and how aggressively to filter and summarize. Loaded from a single YAML
// file, see Load.
type Profile struct {
	Identity   Identity   `yaml:"identity"`
	Keywords   Keywords   `yaml:"keywords"`
	Categories []Category `yaml:"categories"`
	Filters    Filters    `yaml:"filters"`
	Cleaning   Cleaning   `yaml:"cleaning"`
	Dedup      Dedup      `yaml:"dedup"`
	Scoring    Scoring    `yaml:"scoring"`
	Limits     Limits     `yaml:"limits"`
	LLM        LLM        `yaml:"llm"`
	Extraction Extraction `yaml:"extraction"`
	Sources    Sources    `yaml:"sources"`
}

type Identity struct {
	Role      string   `yaml:"role"`
	Interests []string `yaml:"interests"`
}

// Keywords holds the two-tier keyword lists for the deterministic first
// scoring pass. All matches are case-insensitive substring matches.
type Keywords struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
}

// Category maps keywords onto a display category. Order matters: the first
// matching category wins.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type Filters struct {
	SpamKeywords []string `yaml:"spam_keywords"`
}

type Cleaning struct {
	MinContentLength int `yaml:"min_content_length"`
	MaxContentLength int `yaml:"max_content_length"`
	MaxAgeDays       int `yaml:"max_age_days"`
}

type Dedup struct {
	RetentionDays  int `yaml:"retention_days"`
	URLWindowHours int `yaml:"url_window_hours"`
}

// Scoring defines tier boundaries on the 0-100 scale. An item's tier is the
// highest tier whose threshold it meets; below FYI it is skipped.
type Scoring struct {
	MustRead    int `yaml:"must_read"`
	Recommended int `yaml:"recommended"`
	FYI         int `yaml:"fyi"`
}

// Limits caps the number of items kept per tier in the final output.
type Limits struct {
	MustRead    int `yaml:"must_read"`
	Recommended int `yaml:"recommended"`
	FYI         int `yaml:"fyi"`
}

type LLM struct {
	BatchSize     int      `yaml:"batch_size"`
	BorderlineCap int      `yaml:"borderline_cap"`
	BatchDelayMs  int      `yaml:"batch_delay_ms"`
	Providers     []string `yaml:"providers"`
	GeminiModel   string   `yaml:"gemini_model"`
	OpenAIModel   string   `yaml:"openai_model"`
}

type Extraction struct {
	Enabled          bool `yaml:"enabled"`
	MinContentLength int  `yaml:"min_content_length"`
	MaxFetches       int  `yaml:"max_fetches"`
}

type Sources struct {
	Folo           FoloSource     `yaml:"folo"`
	GitHubTrending TrendingSource `yaml:"github_trending"`
	Papers         PapersSource   `yaml:"papers"`
}

type FoloSource struct {
	Enabled   bool   `yaml:"enabled"`
	ListID    string `yaml:"list_id"`
	Pages     int    `yaml:"pages"`
	PageDelay int    `yaml:"page_delay_ms"`
}

type TrendingSource struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

type PapersSource struct {
	Enabled bool     `yaml:"enabled"`
	Feeds   []string `yaml:"feeds"`
}
