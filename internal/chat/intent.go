package chat

import (
	"regexp"
	"strings"
)

// Intent is the resolved purpose of a chat message.
type Intent string

const (
	IntentAuto      Intent = "auto"
	IntentGreeting  Intent = "greeting"
	IntentRecommend Intent = "recommend"
	IntentSearch    Intent = "search"
)

var (
	greetingRe  = regexp.MustCompile(`\b(hello|hi|hey|greetings)\b`)
	recommendRe = regexp.MustCompile(`\b(recommend|suggest|similar|like|enjoyed)\b`)
	searchRe    = regexp.MustCompile(`\b(search|find|look for)\b`)
)

// DetectIntent classifies a message by keyword. Greeting beats recommend,
// which beats search; anything else is a recommendation request.
func DetectIntent(message string) Intent {
	m := strings.ToLower(message)
	switch {
	case greetingRe.MatchString(m):
		return IntentGreeting
	case recommendRe.MatchString(m):
		return IntentRecommend
	case searchRe.MatchString(m):
		return IntentSearch
	default:
		return IntentRecommend
	}
}

// ParseIntent maps a request tag to an Intent; empty means auto.
func ParseIntent(tag string) (Intent, bool) {
	switch Intent(strings.ToLower(strings.TrimSpace(tag))) {
	case "", IntentAuto:
		return IntentAuto, true
	case IntentGreeting:
		return IntentGreeting, true
	case IntentRecommend:
		return IntentRecommend, true
	case IntentSearch:
		return IntentSearch, true
	}
	return "", false
}
