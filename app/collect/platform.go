package collect

import "strings"

// Platform selects the per-source transform strategy for Folo entries.
// Detection is heuristic, based on feed title and URL substrings, with
// article as the fallback.
type Platform string

const (
	PlatformArticle Platform = "article"
	PlatformTwitter Platform = "twitter"
	PlatformReddit  Platform = "reddit"
	PlatformGitHub  Platform = "github"
	PlatformPaper   Platform = "paper"
)

func DetectPlatform(feedTitle, feedURL string) Platform {
	haystack := strings.ToLower(feedTitle + " " + feedURL)

	switch {
	case strings.Contains(haystack, "twitter") || strings.Contains(haystack, "x.com") || strings.Contains(haystack, "nitter"):
		return PlatformTwitter
	case strings.Contains(haystack, "reddit"):
		return PlatformReddit
	case strings.Contains(haystack, "github"):
		return PlatformGitHub
	case strings.Contains(haystack, "arxiv") || strings.Contains(haystack, "paper"):
		return PlatformPaper
	default:
		return PlatformArticle
	}
}
