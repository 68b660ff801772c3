package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService resolves pipeline settings from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Keys absent from the store take their
// default; keys present keep their value even when it is zero, so that
// Validate can reject it. A value that does not parse as its key's type is
// an error, and every such key is reported together.
func (s *SettingsService) Get() (*domain.PipelineSettings, error) {
	defaults := domain.DefaultPipelineSettings()
	r := &reader{store: s.configStore}

	settings := &domain.PipelineSettings{
		Source: domain.SourceSettings{
			Dir:        r.getString(domain.KeySourceDir, defaults.Source.Dir),
			Extensions: r.getStringSlice(domain.KeySourceExtensions, defaults.Source.Extensions),
			Workers:    r.getInt(domain.KeySourceWorkers, defaults.Source.Workers),
		},
		Topics: domain.TopicSettings{
			Count:     r.getInt(domain.KeyTopicsCount, defaults.Topics.Count),
			TopWords:  r.getInt(domain.KeyTopicsTopWords, defaults.Topics.TopWords),
			Pairing:   domain.PairingMode(r.getString(domain.KeyTopicsPairing, string(defaults.Topics.Pairing))),
			Seed:      r.getSeed(defaults.Topics.Seed),
			MaxIter:   r.getInt(domain.KeyTopicsMaxIter, defaults.Topics.MaxIter),
			StopWords: r.getStringSlice(domain.KeyTopicsStopWords, defaults.Topics.StopWords),
		},
		Index: domain.IndexSettings{
			Name:      s.configStore.GetString(domain.KeyIndexName),
			APIKey:    s.configStore.GetString(domain.KeyIndexAPIKey),
			Host:      s.configStore.GetString(domain.KeyIndexHost),
			Namespace: s.configStore.GetString(domain.KeyIndexNamespace),
			Dimension: r.getInt(domain.KeyIndexDimension, defaults.Index.Dimension),
			Metric:    domain.IndexMetric(r.getString(domain.KeyIndexMetric, string(defaults.Index.Metric))),
			Cloud:     r.getString(domain.KeyIndexCloud, defaults.Index.Cloud),
			Region:    r.getString(domain.KeyIndexRegion, defaults.Index.Region),
			RateLimit: r.getFloat(domain.KeyIndexRateLimit, defaults.Index.RateLimit),
			Workers:   r.getInt(domain.KeyIndexWorkers, defaults.Index.Workers),
		},
		Log: domain.LogSettings{
			Format:  domain.LogFormat(r.getString(domain.KeyLogFormat, string(defaults.Log.Format))),
			Verbose: r.getBool(domain.KeyLogVerbose, defaults.Log.Verbose),
		},
		Metrics: domain.MetricsSettings{
			Pushgateway: s.configStore.GetString(domain.KeyMetricsPushgateway),
			Job:         r.getString(domain.KeyMetricsJob, defaults.Metrics.Job),
		},
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks settings before any stage runs.
// All problems are reported together.
func (s *SettingsService) Validate(settings *domain.PipelineSettings, requireIndex bool) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...))
	}

	if settings.Source.Dir == "" {
		invalid("%s must not be empty", domain.KeySourceDir)
	}
	if settings.Source.Workers < 1 {
		invalid("%s must be at least 1, got %d", domain.KeySourceWorkers, settings.Source.Workers)
	}

	if settings.Topics.Count < 1 {
		errs = append(errs, fmt.Errorf("%w: %s must be at least 1, got %d",
			domain.ErrInvalidTopicCount, domain.KeyTopicsCount, settings.Topics.Count))
	}
	if settings.Topics.TopWords < 1 {
		invalid("%s must be at least 1, got %d", domain.KeyTopicsTopWords, settings.Topics.TopWords)
	}
	if !settings.Topics.Pairing.IsValid() {
		invalid("%s must be dominant or positional, got %q", domain.KeyTopicsPairing, settings.Topics.Pairing)
	}
	if settings.Topics.MaxIter < 1 {
		invalid("%s must be at least 1, got %d", domain.KeyTopicsMaxIter, settings.Topics.MaxIter)
	}

	if !settings.Index.Metric.IsValid() {
		invalid("%s must be cosine, euclidean or dotproduct, got %q", domain.KeyIndexMetric, settings.Index.Metric)
	}
	if settings.Index.Dimension < 1 {
		invalid("%s must be at least 1, got %d", domain.KeyIndexDimension, settings.Index.Dimension)
	}
	if settings.Index.RateLimit < 0 {
		invalid("%s must not be negative, got %v", domain.KeyIndexRateLimit, settings.Index.RateLimit)
	}
	if settings.Index.Workers < 1 {
		invalid("%s must be at least 1, got %d", domain.KeyIndexWorkers, settings.Index.Workers)
	}
	if requireIndex && !settings.Index.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: %s and %s are required",
			domain.ErrIndexUnavailable, domain.KeyIndexName, domain.KeyIndexAPIKey))
	}

	if !settings.Log.Format.IsValid() {
		invalid("%s must be auto, json or console, got %q", domain.KeyLogFormat, settings.Log.Format)
	}

	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.PipelineSettings {
	return domain.DefaultPipelineSettings()
}

// reader reads typed values with defaults and collects parse errors.
type reader struct {
	store driven.ConfigStore
	errs  []error
}

func (r *reader) fail(key string, raw any, kind string) {
	r.errs = append(r.errs, fmt.Errorf("%w: %s: %q is not %s", domain.ErrInvalidInput, key, fmt.Sprint(raw), kind))
}

func (r *reader) getString(key, defaultVal string) string {
	val := r.store.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (r *reader) getStringSlice(key string, defaultVal []string) []string {
	val := r.store.GetStringSlice(key)
	if len(val) == 0 {
		return append([]string(nil), defaultVal...)
	}
	return val
}

func (r *reader) getInt(key string, defaultVal int) int {
	raw, ok := r.store.Get(key)
	if !ok {
		return defaultVal
	}
	n, ok := parseInt(raw)
	if !ok {
		r.fail(key, raw, "a number")
		return defaultVal
	}
	return n
}

func (r *reader) getFloat(key string, defaultVal float64) float64 {
	raw, ok := r.store.Get(key)
	if !ok {
		return defaultVal
	}
	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		err = strconv.ErrSyntax
	}
	if err != nil {
		r.fail(key, raw, "a number")
		return defaultVal
	}
	return f
}

func (r *reader) getBool(key string, defaultVal bool) bool {
	raw, ok := r.store.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return b
		}
	}
	r.fail(key, raw, "a boolean")
	return defaultVal
}

func (r *reader) getSeed(defaultVal uint64) uint64 {
	key := domain.KeyTopicsSeed
	raw, ok := r.store.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case uint64:
		return v
	case string:
		text := strings.TrimSpace(v)
		if seed, err := strconv.ParseUint(text, 10, 64); err == nil {
			return seed
		}
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			r.fail(key, raw, "a number")
			return defaultVal
		}
	default:
		n, ok := parseInt(raw)
		if !ok {
			r.fail(key, raw, "a number")
			return defaultVal
		}
		if n >= 0 {
			return uint64(n)
		}
	}
	r.errs = append(r.errs, fmt.Errorf("%w: %s must not be negative, got %v", domain.ErrInvalidInput, key, raw))
	return defaultVal
}

// parseInt accepts integers, integral floats (TOML and JSON decoders
// produce them) and decimal strings.
func parseInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}
