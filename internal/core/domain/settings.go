package domain

const unknownDescription = "Unknown"

// PairingMode defines which word ranking a document's metadata carries.
type PairingMode string

// Available pairing modes.
const (
	// PairingDominant pairs each document with the ranking of its highest-weight topic.
	PairingDominant PairingMode = "dominant"

	// PairingPositional pairs document i with ranking i and stops when either side runs out.
	PairingPositional PairingMode = "positional"
)

// IsValid returns true if the pairing mode is recognised.
func (m PairingMode) IsValid() bool {
	switch m {
	case PairingDominant, PairingPositional:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m PairingMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m PairingMode) Description() string {
	switch m {
	case PairingDominant:
		return "Dominant topic (every document, ranking of its strongest topic)"
	case PairingPositional:
		return "Positional (document i gets ranking i, truncated to the shorter side)"
	default:
		return unknownDescription
	}
}

// IndexMetric is the similarity metric of the vector index.
type IndexMetric string

// Supported metrics.
const (
	MetricCosine     IndexMetric = "cosine"
	MetricEuclidean  IndexMetric = "euclidean"
	MetricDotProduct IndexMetric = "dotproduct"
)

// IsValid returns true if the metric is recognised.
func (m IndexMetric) IsValid() bool {
	switch m {
	case MetricCosine, MetricEuclidean, MetricDotProduct:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m IndexMetric) String() string {
	return string(m)
}

// LogFormat selects how log lines are rendered.
type LogFormat string

// Available log formats.
const (
	LogFormatAuto    LogFormat = "auto"
	LogFormatJSON    LogFormat = "json"
	LogFormatConsole LogFormat = "console"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	switch f {
	case LogFormatAuto, LogFormatJSON, LogFormatConsole:
		return true
	default:
		return false
	}
}

// Stop word selectors.
const (
	StopWordsEnglish = "english"
	StopWordsNone    = "none"
)

// SourceSettings configures document enumeration and extraction.
type SourceSettings struct {
	// Dir is the directory holding the source documents.
	Dir string

	// Extensions lists the file extensions read from Dir.
	Extensions []string

	// Workers bounds concurrent extractions.
	Workers int
}

// TopicSettings configures vectorisation and the topic model.
type TopicSettings struct {
	// Count is the number of topics to fit.
	Count int

	// TopWords is the number of terms ranked per topic.
	TopWords int

	// Pairing selects the ranking attached to each document.
	Pairing PairingMode

	// Seed drives the model's random initialisation.
	Seed uint64

	// MaxIter is the number of EM passes.
	MaxIter int

	// StopWords is "english", "none", or an explicit word list.
	StopWords []string
}

// IndexSettings configures the remote vector index.
type IndexSettings struct {
	Name      string
	APIKey    string
	Host      string
	Namespace string
	Dimension int
	Metric    IndexMetric
	Cloud     string
	Region    string

	// RateLimit caps upserts per second. Zero disables limiting.
	RateLimit float64

	// Workers bounds concurrent upserts. One means strictly sequential.
	Workers int
}

// IsConfigured reports whether the index can be reached.
func (s IndexSettings) IsConfigured() bool {
	return s.Name != "" && s.APIKey != ""
}

// LogSettings configures log output.
type LogSettings struct {
	Format  LogFormat
	Verbose bool
}

// MetricsSettings configures metric export.
type MetricsSettings struct {
	// Pushgateway is the push URL. Empty disables pushing.
	Pushgateway string

	// Job is the pushgateway job label.
	Job string
}

// PipelineSettings holds the whole run configuration.
type PipelineSettings struct {
	Source  SourceSettings
	Topics  TopicSettings
	Index   IndexSettings
	Log     LogSettings
	Metrics MetricsSettings
}

// DefaultPipelineSettings returns the built-in defaults.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		Source: SourceSettings{
			Dir:        "./documents",
			Extensions: []string{".pdf"},
			Workers:    4,
		},
		Topics: TopicSettings{
			Count:     3,
			TopWords:  3,
			Pairing:   PairingDominant,
			Seed:      0,
			MaxIter:   10,
			StopWords: []string{StopWordsEnglish},
		},
		Index: IndexSettings{
			Dimension: 1536,
			Metric:    MetricCosine,
			Cloud:     "aws",
			Region:    "us-east-1",
			Workers:   1,
		},
		Log: LogSettings{
			Format: LogFormatAuto,
		},
		Metrics: MetricsSettings{
			Job: "sercha_topics",
		},
	}
}

// TopicParams derives the model parameters from the settings.
func (s TopicSettings) TopicParams() TopicParams {
	return TopicParams{
		Topics:   s.Count,
		TopWords: s.TopWords,
		Seed:     s.Seed,
		MaxIter:  s.MaxIter,
	}
}
