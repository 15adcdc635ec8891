package service

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern matching, not parsing: malformed or nested markup may under- or
// over-match.
var (
	titleRe       = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	descriptionRe = regexp.MustCompile(`(?i)<meta[^>]*name="description"[^>]*content="([^"]*)"[^>]*>`)
	h1Re          = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	nonWordRe     = regexp.MustCompile(`[^\w\s]`)
)

// minTokenLength is the shortest token kept as a tag
const minTokenLength = 4

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "be", "to", "of", "and", "that", "have", "with", "this", "from",
		"they", "would", "about", "there", "their", "what", "when", "make", "like",
		"time", "just", "know", "take", "people", "year", "your", "good", "some",
		"could", "them", "than", "then", "look", "only", "come", "over", "think",
	} {
		stopWords[w] = struct{}{}
	}
}

// KeyText joins the first title, the first meta description and every h1
// of an HTML document.
func KeyText(html string) string {
	var title, description string
	if m := titleRe.FindStringSubmatch(html); m != nil {
		title = strings.TrimSpace(m[1])
	}
	if m := descriptionRe.FindStringSubmatch(html); m != nil {
		description = strings.TrimSpace(m[1])
	}

	var headings []string
	for _, m := range h1Re.FindAllStringSubmatch(html, -1) {
		headings = append(headings, strings.TrimSpace(m[1]))
	}

	return title + " " + description + " " + strings.Join(headings, " ")
}

// Keywords returns up to n most frequent words of text. Words shorter than
// four characters and stop words are ignored; equal counts keep the order in
// which the words first appeared.
func Keywords(text string, n int) []string {
	words := strings.Fields(nonWordRe.ReplaceAllString(strings.ToLower(text), ""))

	counts := make(map[string]int)
	order := []string{}
	for _, w := range words {
		if len(w) < minTokenLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
