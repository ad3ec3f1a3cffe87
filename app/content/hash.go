package content

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var trackingParamRe = regexp.MustCompile(`[?&](utm_[^=&]*|ref|source)=[^&]*`)

// ContentHash returns the SHA-256 hex digest of title + body. It is the
// primary deduplication key and is stable for identical input.
func ContentHash(title, body string) string {
	sum := sha256.Sum256([]byte(title + body))
	return hex.EncodeToString(sum[:])
}

// URLHash hashes a URL after normalization: lower-cased, trailing slash
// stripped, tracking parameters removed. Returns "" for an empty URL so
// callers can skip recording it.
func URLHash(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalizeURLForHash(rawURL)))
	return hex.EncodeToString(sum[:])
}

// TitleHash hashes a title after normalization: NFC form, lower-cased,
// trimmed, with common separator variations collapsed. Returns "" for an
// empty title.
func TitleHash(title string) string {
	if title == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(NormalizeTitle(title)))
	return hex.EncodeToString(sum[:])
}

// NormalizeURL canonicalizes an item URL for presentation and matching:
// tracking parameters removed, trailing slash stripped, http upgraded to
// https.
func NormalizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	url := trackingParamRe.ReplaceAllString(rawURL, "")
	url = strings.TrimRight(url, "/")

	if strings.HasPrefix(url, "http://") {
		url = "https://" + strings.TrimPrefix(url, "http://")
	}

	// A stripped leading parameter may leave "&" where "?" belongs
	if !strings.Contains(url, "?") && strings.Contains(url, "&") {
		url = strings.Replace(url, "&", "?", 1)
	}

	return url
}

// NormalizeTitle lowers and NFC-normalizes a title and removes separator
// variations (" - ", " | ") so re-published headlines hash identically.
func NormalizeTitle(title string) string {
	t := norm.NFC.String(title)
	t = strings.ToLower(strings.TrimSpace(t))
	t = strings.ReplaceAll(t, " - ", " ")
	t = strings.ReplaceAll(t, " | ", " ")
	return t
}

func normalizeURLForHash(rawURL string) string {
	url := strings.ToLower(rawURL)
	url = strings.TrimRight(url, "/")
	url = trackingParamRe.ReplaceAllString(url, "")
	return url
}
