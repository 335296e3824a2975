package chat

import (
	"regexp"
	"strings"
)

// phrasePatterns are tried in order; the first match supplies the title.
var phrasePatterns = func() []*regexp.Regexp {
	lead := []string{"like", "recommend", "suggest", "similar to", "enjoyed", "watch", "search for", "find"}
	out := make([]*regexp.Regexp, len(lead))
	for i, l := range lead {
		out[i] = regexp.MustCompile(`\b` + l + ` (.+?)(?:,|!|\.|$)`)
	}
	return out
}()

var fillerWords = map[string]struct{}{
	"recommend": {}, "suggest": {}, "similar": {}, "like": {},
	"movies": {}, "movie": {}, "film": {}, "films": {},
}

// ExtractTitle pulls the movie title or search phrase out of a message.
// When no phrase pattern matches, the message minus filler words is used.
func ExtractTitle(message string) string {
	m := strings.ToLower(strings.TrimSpace(message))
	for _, re := range phrasePatterns {
		if sub := re.FindStringSubmatch(m); sub != nil {
			return trimPhrase(sub[1])
		}
	}
	var kept []string
	for _, w := range strings.Fields(m) {
		if _, filler := fillerWords[w]; filler {
			continue
		}
		kept = append(kept, w)
	}
	return trimPhrase(strings.Join(kept, " "))
}

func trimPhrase(s string) string {
	return strings.Trim(s, " \t?!.,;:\"'")
}
