// Package env reads configuration from the process environment and .env files.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config"
	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// DefaultFile is the dotenv file read when none is given.
const DefaultFile = ".env"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Names maps configuration keys to environment variable names.
var Names = map[string]string{
	domain.KeySourceDir:        "SERCHA_TOPICS_SOURCE_DIR",
	domain.KeySourceExtensions: "SERCHA_TOPICS_SOURCE_EXTENSIONS",
	domain.KeySourceWorkers:    "SERCHA_TOPICS_EXTRACT_WORKERS",

	domain.KeyTopicsCount:     "SERCHA_TOPICS_COUNT",
	domain.KeyTopicsTopWords:  "SERCHA_TOPICS_TOP_WORDS",
	domain.KeyTopicsPairing:   "SERCHA_TOPICS_PAIRING",
	domain.KeyTopicsSeed:      "SERCHA_TOPICS_SEED",
	domain.KeyTopicsMaxIter:   "SERCHA_TOPICS_MAX_ITER",
	domain.KeyTopicsStopWords: "SERCHA_TOPICS_STOP_WORDS",

	domain.KeyIndexName:      "PINECONE_INDEX_NAME",
	domain.KeyIndexAPIKey:    "PINECONE_API_KEY",
	domain.KeyIndexHost:      "PINECONE_INDEX_HOST",
	domain.KeyIndexNamespace: "PINECONE_NAMESPACE",
	domain.KeyIndexDimension: "SERCHA_TOPICS_INDEX_DIMENSION",
	domain.KeyIndexMetric:    "SERCHA_TOPICS_INDEX_METRIC",
	domain.KeyIndexCloud:     "SERCHA_TOPICS_INDEX_CLOUD",
	domain.KeyIndexRegion:    "SERCHA_TOPICS_INDEX_REGION",
	domain.KeyIndexRateLimit: "SERCHA_TOPICS_RATE_LIMIT",
	domain.KeyIndexWorkers:   "SERCHA_TOPICS_UPSERT_WORKERS",

	domain.KeyLogFormat:  "SERCHA_TOPICS_LOG_FORMAT",
	domain.KeyLogVerbose: "SERCHA_TOPICS_VERBOSE",

	domain.KeyMetricsPushgateway: "SERCHA_TOPICS_PUSHGATEWAY",
	domain.KeyMetricsJob:         "SERCHA_TOPICS_METRICS_JOB",
}

// ConfigStore is a snapshot of the environment taken at construction.
// Process variables take precedence over dotenv files; empty values count as unset.
type ConfigStore struct {
	data  map[string]string
	files []string
}

// NewConfigStore reads the given dotenv files, then the process environment.
// Missing dotenv files are ignored; malformed ones are an error.
func NewConfigStore(files ...string) (*ConfigStore, error) {
	if len(files) == 0 {
		files = []string{DefaultFile}
	}

	dotenv := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			dotenv[k] = v
		}
	}

	s := &ConfigStore{data: make(map[string]string), files: files}
	for key, name := range Names {
		val, ok := os.LookupEnv(name)
		if !ok || val == "" {
			val = dotenv[name]
		}
		if val = strings.TrimSpace(val); val != "" {
			s.data[key] = val
		}
	}
	return s, nil
}

// Get retrieves a configuration value by key. Values are always strings.
func (s *ConfigStore) Get(key string) (any, bool) {
	val, ok := s.data[key]
	if !ok {
		return nil, false
	}
	return val, true
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	return s.data[key]
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	return config.Int(s.data[key])
}

// GetFloat retrieves a floating point configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	return config.Float(s.data[key])
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	return config.Bool(s.data[key])
}

// GetStringSlice retrieves a comma-separated list.
func (s *ConfigStore) GetStringSlice(key string) []string {
	return config.StringSlice(s.data[key])
}

// Path describes the environment source.
func (s *ConfigStore) Path() string {
	return "env(" + strings.Join(s.files, ",") + ")"
}
