package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks ranges and enumerations.
func (c *AppConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Catalog.Source) == "" {
		errs = append(errs, errors.New("catalog.source is required"))
	}

	v := c.Vectorizer
	if v.MaxFeatures < 1 {
		errs = append(errs, fmt.Errorf("vectorizer.max_features must be positive, got %d", v.MaxFeatures))
	}
	if v.NgramMin < 1 || v.NgramMax < v.NgramMin {
		errs = append(errs, fmt.Errorf("vectorizer ngram range %d..%d is invalid", v.NgramMin, v.NgramMax))
	}
	switch v.StopWords {
	case "english", "none":
	default:
		errs = append(errs, fmt.Errorf("vectorizer.stop_words must be english or none, got %q", v.StopWords))
	}

	for _, l := range []struct {
		name string
		LimitConfig
	}{{"recommend", c.Recommend}, {"search", c.Search}} {
		if l.MaxLimit < 1 || l.DefaultLimit < 1 || l.DefaultLimit > l.MaxLimit {
			errs = append(errs, fmt.Errorf("%s limits must satisfy 1 <= default_limit (%d) <= max_limit (%d)", l.name, l.DefaultLimit, l.MaxLimit))
		}
	}
	if c.Chat.RecommendLimit < 1 || c.Chat.SearchLimit < 1 {
		errs = append(errs, errors.New("chat limits must be positive"))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("server.rate_limit_per_minute must not be negative"))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
