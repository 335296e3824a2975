package supervisor

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"movierec/internal/metrics"
	"movierec/internal/recommend"
)

// Builder loads a catalog and builds the engine from it.
type Builder interface {
	LoadAndBuild(ctx context.Context, source string) error
	Status() recommend.Status
}

// BuildService performs the one-time engine build. It never restarts: a
// failed build leaves the engine Unbuilt and every query answers 503.
type BuildService struct {
	engine Builder
	source string
	logger zerolog.Logger
	done   chan struct{}
	err    error
}

// NewBuildService creates a build service for source.
//
//nolint:gocritic // zerolog loggers are passed by value
func NewBuildService(engine Builder, source string, logger zerolog.Logger) *BuildService {
	return &BuildService{
		engine: engine,
		source: source,
		logger: logger.With().Str("service", "engine-build").Logger(),
		done:   make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (s *BuildService) Serve(ctx context.Context) error {
	defer close(s.done)
	s.logger.Info().Str("source", s.source).Msg("building recommendation engine")

	if err := s.engine.LoadAndBuild(ctx, s.source); err != nil {
		s.err = err
		metrics.RecordBuildError()
		s.logger.Error().Err(err).Str("source", s.source).Msg("engine build failed; serving 503 until restart")
		return suture.ErrDoNotRestart
	}

	st := s.engine.Status()
	metrics.RecordBuild(st.Movies, st.Vocabulary, st.BuildDuration)
	s.logger.Info().
		Int("movies", st.Movies).
		Int("vocabulary", st.Vocabulary).
		Dur("took", st.BuildDuration).
		Msg("recommendation engine ready")
	return suture.ErrDoNotRestart
}

// Done is closed when the build attempt finished.
func (s *BuildService) Done() <-chan struct{} { return s.done }

// Err returns the build error once Done is closed.
func (s *BuildService) Err() error {
	<-s.done
	return s.err
}

func (s *BuildService) String() string { return "engine-build" }
