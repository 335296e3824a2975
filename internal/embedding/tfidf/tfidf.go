package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/kljensen/snowball"
)

var (
	// ErrEmptyCorpus is returned by Fit when there are no documents.
	ErrEmptyCorpus = errors.New("tfidf: empty corpus")
	// ErrEmptyVocabulary is returned by Fit when no document yields a term.
	ErrEmptyVocabulary = errors.New("tfidf: empty vocabulary; documents contain only stop words or nothing")
	// ErrNotFitted is returned by Transform before Fit succeeded.
	ErrNotFitted = errors.New("tfidf: vectorizer not fitted")
)

// Config controls the analyzer and vocabulary selection.
type Config struct {
	MaxFeatures int
	NgramMin    int
	NgramMax    int
	// StopWords is "english" or "none".
	StopWords string
	Stemming  bool
}

// DefaultConfig returns unigrams and bigrams, 5000 features and the english stop list.
func DefaultConfig() Config {
	return Config{MaxFeatures: 5000, NgramMin: 1, NgramMax: 2, StopWords: "english"}
}

// Vectorizer implements a TF-IDF vectorizer over word n-grams.
// It builds a vocabulary from the corpus and computes IDF values.
// A fitted Vectorizer is safe for concurrent Transform calls.
type Vectorizer struct {
	cfg          Config
	vocabulary   map[string]int
	terms        []string
	idf          []float64
	dimension    int
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates an unfitted vectorizer. Zero fields of cfg fall back to DefaultConfig.
func NewVectorizer(cfg Config) *Vectorizer {
	def := DefaultConfig()
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = def.MaxFeatures
	}
	if cfg.NgramMin <= 0 {
		cfg.NgramMin = def.NgramMin
	}
	if cfg.NgramMax < cfg.NgramMin {
		cfg.NgramMax = cfg.NgramMin
	}
	if cfg.StopWords == "" {
		cfg.StopWords = def.StopWords
	}
	stop := map[string]struct{}{}
	if cfg.StopWords == "english" {
		stop = englishStopwords()
	}
	return &Vectorizer{
		cfg:          cfg,
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\b\w\w+\b`),
		stopwords:    stop,
	}
}

// Name returns the identifier of this vectorizer implementation.
func (v *Vectorizer) Name() string { return "tfidf" }

// Fit builds the vocabulary and IDF values from corpus and returns one
// L2-normalised row per document, in corpus order.
func (v *Vectorizer) Fit(corpus []string) ([][]float64, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	analyzed := make([][]string, len(corpus))
	df := make(map[string]int)
	total := make(map[string]int)
	for i, text := range corpus {
		grams := v.analyze(text)
		analyzed[i] = grams
		seen := make(map[string]struct{}, len(grams))
		for _, g := range grams {
			total[g]++
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := selectFeatures(total, v.cfg.MaxFeatures)
	v.vocabulary = make(map[string]int, len(terms))
	v.terms = terms
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.dimension = len(terms)
	v.prepared = true

	rows := make([][]float64, len(corpus))
	for i, grams := range analyzed {
		rows[i] = v.weigh(grams)
	}
	return rows, nil
}

// Dimension returns the size of the selected vocabulary.
func (v *Vectorizer) Dimension() int { return v.dimension }

// Vocabulary returns the selected terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Transform computes the TF-IDF vector of text against the fitted vocabulary.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.prepared {
		return nil, ErrNotFitted
	}
	return v.weigh(v.analyze(text)), nil
}

func (v *Vectorizer) weigh(grams []string) []float64 {
	vec := make([]float64, v.dimension)
	for _, g := range grams {
		if idx, ok := v.vocabulary[g]; ok {
			vec[idx]++
		}
	}
	for i := range vec {
		if vec[i] != 0 {
			vec[i] *= v.idf[i]
		}
	}
	// L2 normalize
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// analyze tokenizes text, drops stop words and emits the configured n-grams.
func (v *Vectorizer) analyze(text string) []string {
	tokens := v.tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	var grams []string
	for n := v.cfg.NgramMin; n <= v.cfg.NgramMax; n++ {
		if n == 1 {
			grams = append(grams, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func (v *Vectorizer) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := v.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		if v.cfg.Stemming {
			if stemmed, err := snowball.Stem(t, "english", true); err == nil && stemmed != "" {
				t = stemmed
			}
		}
		out = append(out, t)
	}
	return out
}

// selectFeatures keeps the limit most frequent terms (ties by term) and
// returns them in alphabetical order.
func selectFeatures(total map[string]int, limit int) []string {
	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		ci, cj := total[terms[i]], total[terms[j]]
		if ci != cj {
			return ci > cj
		}
		return terms[i] < terms[j]
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}
