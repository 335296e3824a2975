package commands

import (
	"context"
	"time"

	"movierec/internal/config"
	"movierec/internal/embedding"
	"movierec/internal/metrics"
	"movierec/internal/recommend"
	"movierec/internal/vectorstore"
)

// newEngine assembles an Unbuilt engine from cfg.
func newEngine(cfg *config.AppConfig) (*recommend.Engine, error) {
	vec, err := embedding.New(embedding.Config{
		Type:        cfg.Vectorizer.Type,
		MaxFeatures: cfg.Vectorizer.MaxFeatures,
		NgramMin:    cfg.Vectorizer.NgramMin,
		NgramMax:    cfg.Vectorizer.NgramMax,
		StopWords:   cfg.Vectorizer.StopWords,
		Stemming:    cfg.Vectorizer.Stemming,
	})
	if err != nil {
		return nil, err
	}
	st, err := vectorstore.New(cfg.VectorStore.Type)
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(vec, st), nil
}

// buildEngine assembles the engine and builds it synchronously.
func buildEngine(ctx context.Context, cfg *config.AppConfig) (*recommend.Engine, error) {
	e, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := e.LoadAndBuild(ctx, cfg.Catalog.Source); err != nil {
		metrics.RecordBuildError()
		return nil, err
	}
	st := e.Status()
	metrics.RecordBuild(st.Movies, st.Vocabulary, time.Since(start))
	return e, nil
}
