package client

import (
	"strings"
	"unicode"
)

// MentionQuery inspects the text left of the cursor and returns the
// partial username of an @mention being typed, if any. The query ends
// at the cursor and starts after the nearest '@' that begins a word.
func MentionQuery(text string, cursor int) (string, bool) {
	if cursor < 0 || cursor > len(text) {
		return "", false
	}

	left := text[:cursor]
	at := strings.LastIndexByte(left, '@')
	if at == -1 {
		return "", false
	}

	// '@' 前必须是行首或空白，否则不算提及
	if at > 0 {
		prev := rune(left[at-1])
		if !unicode.IsSpace(prev) {
			return "", false
		}
	}

	query := left[at+1:]
	for _, r := range query {
		if !isMentionRune(r) {
			return "", false
		}
	}

	return query, true
}

// InsertMention replaces the partial @mention at the cursor with the
// chosen username plus a trailing space, and returns the updated text
// with the new cursor position.
func InsertMention(text string, cursor int, username string) (string, int) {
	query, ok := MentionQuery(text, cursor)
	if !ok {
		return text, cursor
	}

	start := cursor - len(query)
	inserted := username + " "
	updated := text[:start] + inserted + text[cursor:]
	return updated, start + len(inserted)
}

func isMentionRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NormalizeTags lowercases tags, strips a leading '#' and drops empties
// and duplicates, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}
