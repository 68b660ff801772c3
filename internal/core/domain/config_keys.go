package domain

// Configuration keys, dotted by section.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySourceDir        = "source.dir"
	KeySourceExtensions = "source.extensions"
	KeySourceWorkers    = "source.workers"

	KeyTopicsCount     = "topics.count"
	KeyTopicsTopWords  = "topics.top_words"
	KeyTopicsPairing   = "topics.pairing"
	KeyTopicsSeed      = "topics.seed"
	KeyTopicsMaxIter   = "topics.max_iter"
	KeyTopicsStopWords = "topics.stop_words"

	KeyIndexName      = "index.name"
	KeyIndexAPIKey    = "index.api_key"
	KeyIndexHost      = "index.host"
	KeyIndexNamespace = "index.namespace"
	KeyIndexDimension = "index.dimension"
	KeyIndexMetric    = "index.metric"
	KeyIndexCloud     = "index.cloud"
	KeyIndexRegion    = "index.region"
	KeyIndexRateLimit = "index.rate_limit"
	KeyIndexWorkers   = "index.workers"

	KeyLogFormat  = "log.format"
	KeyLogVerbose = "log.verbose"

	KeyMetricsPushgateway = "metrics.pushgateway"
	KeyMetricsJob         = "metrics.job"
)

// ConfigKeys lists every recognised configuration key.
func ConfigKeys() []string {
	return []string{
		KeySourceDir, KeySourceExtensions, KeySourceWorkers,
		KeyTopicsCount, KeyTopicsTopWords, KeyTopicsPairing, KeyTopicsSeed, KeyTopicsMaxIter, KeyTopicsStopWords,
		KeyIndexName, KeyIndexAPIKey, KeyIndexHost, KeyIndexNamespace, KeyIndexDimension, KeyIndexMetric,
		KeyIndexCloud, KeyIndexRegion, KeyIndexRateLimit, KeyIndexWorkers,
		KeyLogFormat, KeyLogVerbose,
		KeyMetricsPushgateway, KeyMetricsJob,
	}
}
