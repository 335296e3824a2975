// Package chat wraps the recommender in a small conversational surface:
// keyword intent detection, phrase extraction and templated replies.
// Template choice is random but never changes the ranked data.
package chat

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"movierec/internal/domain"
	"movierec/internal/logging"
	"movierec/internal/recommend"
)

// Reply types.
const (
	TypeGreeting        = "greeting"
	TypeRecommendations = "recommendations"
	TypeSearchResults   = "search_results"
	TypeError           = "error"
)

// Message is an incoming chat message.
type Message struct {
	Text   string
	Intent Intent
}

// Recommendation is a ranked movie with a natural-language explanation.
type Recommendation struct {
	domain.Recommendation
	Explanation string `json:"explanation"`
}

// Reply is the chat response.
type Reply struct {
	ID              string                `json:"id"`
	Type            string                `json:"type"`
	Message         string                `json:"message"`
	RequestedMovie  string                `json:"requested_movie,omitempty"`
	Recommendations []Recommendation      `json:"recommendations,omitempty"`
	Movies          []domain.MovieSummary `json:"movies,omitempty"`
	Error           string                `json:"error,omitempty"`
	Timestamp       time.Time             `json:"timestamp"`
}

// Limits bounds the result lists of chat replies.
type Limits struct {
	Recommend int
	Search    int
}

// Option configures a Service.
type Option func(*Service)

// WithPicker replaces the random template picker; pick(n) must return [0,n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

// WithClock replaces time.Now for reply timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service turns chat messages into replies backed by a recommender.
type Service struct {
	engine domain.Recommender
	limits Limits
	pick   func(n int) int
	now    func() time.Time
}

// NewService creates a chat service over engine.
func NewService(engine domain.Recommender, limits Limits, opts ...Option) *Service {
	if limits.Recommend <= 0 {
		limits.Recommend = recommend.DefaultRecommendLimit
	}
	if limits.Search <= 0 {
		limits.Search = recommend.DefaultSearchLimit
	}
	s := &Service{engine: engine, limits: limits, pick: rand.Intn, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Reply answers msg. The only error returned is recommend.ErrModelNotReady;
// every other failure becomes an error-typed Reply.
func (s *Service) Reply(msg Message) (*Reply, error) {
	if !s.engine.Ready() {
		return nil, recommend.ErrModelNotReady
	}
	text := strings.ToLower(strings.TrimSpace(msg.Text))
	intent := msg.Intent
	if intent == "" || intent == IntentAuto {
		intent = DetectIntent(text)
	}

	if intent == IntentGreeting {
		return s.reply(TypeGreeting, s.choose(greetings)), nil
	}

	title := ExtractTitle(text)
	if len(title) < 2 {
		return s.reply(TypeError, askForTitle), nil
	}

	var (
		r   *Reply
		err error
	)
	if intent == IntentSearch {
		r, err = s.search(title)
	} else {
		r, err = s.recommend(title)
	}
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, recommend.ErrModelNotReady):
		return nil, err
	default:
		logging.Error().Err(err).Str("intent", string(intent)).Msg("chat reply failed")
		out := s.reply(TypeError, s.choose(generalErrors))
		out.Error = err.Error()
		return out, nil
	}
}

func (s *Service) search(query string) (*Reply, error) {
	movies, err := s.engine.Search(query, s.limits.Search)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return s.reply(TypeSearchResults, fmt.Sprintf("I couldn't find any movies matching '%s'. Try a different search!", query)), nil
	}
	r := s.reply(TypeSearchResults, fmt.Sprintf("I found %d movies matching '%s':", len(movies), query))
	r.Movies = movies
	return r, nil
}

func (s *Service) recommend(title string) (*Reply, error) {
	res, err := s.engine.Recommend(title, s.limits.Recommend)
	if errors.Is(err, recommend.ErrMovieNotFound) {
		return s.reply(TypeError, fmt.Sprintf(s.choose(notFoundReplies), title)), nil
	}
	if err != nil {
		return nil, err
	}
	r := s.reply(TypeRecommendations, fmt.Sprintf(s.choose(recommendationIntros), res.RequestedMovie))
	r.RequestedMovie = res.RequestedMovie
	r.Recommendations = make([]Recommendation, len(res.Recommendations))
	for i, rec := range res.Recommendations {
		r.Recommendations[i] = Recommendation{
			Recommendation: rec,
			Explanation:    fmt.Sprintf(s.choose(recommendationExplanations), rec.Title, percent(rec.SimilarityScore)),
		}
	}
	return r, nil
}

func (s *Service) reply(typ, message string) *Reply {
	return &Reply{ID: uuid.NewString(), Type: typ, Message: message, Timestamp: s.now().UTC()}
}

func (s *Service) choose(pool []string) string {
	return pool[s.pick(len(pool))]
}
