// Package highlight segments text into highlighted and plain runs by
// matching known skill keywords.
package highlight

import (
	"regexp"
	"strings"
)

// Segment is one run of text. Highlighted runs matched a keyword; plain runs
// are everything in between. Concatenating the Text of all segments in order
// reproduces the input exactly.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// Highlight splits text into segments, marking case-insensitive whole-word
// occurrences of the keywords. Matched substrings keep their original casing.
// An empty text or an empty (or all-blank) keyword list yields the input as a
// single plain segment. Overlapping keywords are resolved by the regexp
// engine's alternation order: the first keyword that matches at a position
// wins.
func Highlight(text string, keywords []string) []Segment {
	re := pattern(keywords)
	if re == nil || text == "" {
		return []Segment{{Text: text}}
	}

	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Highlighted: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}

	return segments
}

// pattern builds a single case-insensitive whole-word alternation over all
// keywords, each escaped so it matches literally. Keywords are deduplicated
// case-insensitively in input order; blank keywords are dropped. Returns nil
// when no keyword survives filtering.
func pattern(keywords []string) *regexp.Regexp {
	seen := make(map[string]bool, len(keywords))
	escaped := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		key := strings.ToLower(keyword)
		if seen[key] {
			continue
		}
		seen[key] = true
		escaped = append(escaped, regexp.QuoteMeta(keyword))
	}
	if len(escaped) == 0 {
		return nil
	}

	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
	if err != nil {
		return nil
	}
	return re
}
