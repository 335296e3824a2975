package embedding

import (
	"fmt"

	"movierec/internal/domain"
	"movierec/internal/embedding/tfidf"
)

// Config selects and configures the vectorizer implementation.
type Config struct {
	Type        string
	MaxFeatures int
	NgramMin    int
	NgramMax    int
	StopWords   string
	Stemming    bool
}

// New builds the vectorizer named by cfg.Type. An empty type means tfidf.
func New(cfg Config) (domain.Vectorizer, error) {
	switch cfg.Type {
	case "tfidf", "":
		return tfidf.NewVectorizer(tfidf.Config{
			MaxFeatures: cfg.MaxFeatures,
			NgramMin:    cfg.NgramMin,
			NgramMax:    cfg.NgramMax,
			StopWords:   cfg.StopWords,
			Stemming:    cfg.Stemming,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vectorizer: %s", cfg.Type)
	}
}
