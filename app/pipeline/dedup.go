package pipeline

import (
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/history"
	"github.com/feedsift/feedsift/app/profile"
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "it": true, "its": true, "this": true,
	"that": true, "from": true, "by": true, "as": true, "how": true,
	"what": true, "why": true, "you": true, "your": true, "we": true,
	"our": true, "new": true, "via": true,
}

// fuzzyTitleThreshold is the token-overlap ratio above which two titles in
// the same batch count as duplicates.
const fuzzyTitleThreshold = 0.7

// historyTitleLimit caps how much of a title is stored per history entry.
const historyTitleLimit = 100

// Deduplicator suppresses items already seen, either in the persisted
// history or earlier in the same batch. It owns the history store
// exclusively: the mutex enforces the single-writer assumption so only one
// Run or Maintain executes at a time.
type Deduplicator struct {
	store     history.Store
	retention time.Duration
	urlWindow time.Duration
	now       func() time.Time
	mu        sync.Mutex
}

func NewDeduplicator(store history.Store, p *profile.Profile) *Deduplicator {
	return &Deduplicator{
		store:     store,
		retention: time.Duration(p.Dedup.RetentionDays) * 24 * time.Hour,
		urlWindow: time.Duration(p.Dedup.URLWindowHours) * time.Hour,
		now:       time.Now,
	}
}

// Run processes items strictly in input order: the fuzzy title check for a
// later item depends on earlier items already being accepted.
func (d *Deduplicator) Run(items []content.Item) []content.Item {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := d.store.Load()
	if err != nil {
		slog.Warn("Failed to load dedup history, starting empty", "error", err)
		entries = map[string]history.Entry{}
	}

	now := d.now()
	d.prune(entries, now)

	kept := make([]content.Item, 0, len(items))
	batchHashes := map[string]bool{}
	acceptedTokens := []map[string]bool{}
	duplicates := 0

	for _, item := range items {
		contentHash := item.ContentHash
		if contentHash == "" {
			contentHash = content.ContentHash(item.Title, item.Content)
		}
		urlHash := content.URLHash(item.URL)
		titleHash := content.TitleHash(item.Title)

		if _, seen := entries[contentHash]; seen || batchHashes[contentHash] || batchHashes[titleHash] {
			slog.Debug("Duplicate content", "title", item.Title)
			duplicates++
			continue
		}

		if entry, seen := entries[urlHash]; urlHash != "" && seen && now.Sub(entry.SeenAt) < d.urlWindow {
			slog.Debug("Duplicate URL within window", "url", item.URL)
			duplicates++
			continue
		}

		tokens := titleTokens(item.Title)
		if matchesAccepted(tokens, acceptedTokens) {
			slog.Debug("Fuzzy title duplicate", "title", item.Title)
			duplicates++
			continue
		}

		item.ContentHash = contentHash
		item.URLHash = urlHash
		item.TitleHash = titleHash

		entries[contentHash] = history.Entry{Title: truncateTitle(item.Title), URL: item.URL, SeenAt: now}
		if urlHash != "" {
			entries[urlHash] = history.Entry{Title: truncateTitle(item.Title), URL: item.URL, SeenAt: now}
		}
		batchHashes[contentHash] = true
		if titleHash != "" {
			batchHashes[titleHash] = true
		}
		if len(tokens) >= 3 {
			acceptedTokens = append(acceptedTokens, tokens)
		}

		kept = append(kept, item)
	}

	// A persistence failure must not fail the batch: results are already
	// deduplicated, at worst the next run sees some items again.
	if err := d.store.Save(entries); err != nil {
		slog.Warn("Failed to persist dedup history", "error", err)
	}

	slog.Info("Deduplication completed", "input", len(items), "kept", len(kept), "duplicates", duplicates)

	return kept
}

// Maintain prunes expired history entries and persists the result without
// processing any items.
func (d *Deduplicator) Maintain() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := d.store.Load()
	if err != nil {
		slog.Warn("Failed to load dedup history for maintenance", "error", err)
		entries = map[string]history.Entry{}
	}

	before := len(entries)
	d.prune(entries, d.now())
	slog.Debug("History pruned", "before", before, "after", len(entries))

	return d.store.Save(entries)
}

func (d *Deduplicator) prune(entries map[string]history.Entry, now time.Time) {
	cutoff := now.Add(-d.retention)
	for hash, entry := range entries {
		if entry.SeenAt.Before(cutoff) {
			delete(entries, hash)
		}
	}
}

// titleTokens tokenizes a title for fuzzy matching: lower-cased, split on
// non-alphanumeric runes, stop words removed. Fewer than 3 remaining tokens
// disables the check for that title.
func titleTokens(title string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := map[string]bool{}
	for _, field := range fields {
		if !stopWords[field] {
			tokens[field] = true
		}
	}
	return tokens
}

func matchesAccepted(tokens map[string]bool, accepted []map[string]bool) bool {
	if len(tokens) < 3 {
		return false
	}

	for _, other := range accepted {
		overlap := 0
		for token := range tokens {
			if other[token] {
				overlap++
			}
		}
		if float64(overlap)/float64(len(tokens)) > fuzzyTitleThreshold {
			return true
		}
	}
	return false
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > historyTitleLimit {
		return string(runes[:historyTitleLimit])
	}
	return title
}
