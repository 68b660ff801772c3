package domain

// Metadata keys written to the vector index.
const (
	MetadataKeyTopics            = "topics"
	MetadataKeyTopicDistribution = "topic_distribution"
)

// MetadataRecord is the topic metadata for one document.
// It is built immediately before synchronisation and never persisted locally.
type MetadataRecord struct {
	// ID is the vector index id ("doc_" + ordinal).
	ID string

	// Ordinal is the document ordinal the record belongs to.
	Ordinal int

	// Topics is the word ranking paired with the document.
	Topics []string

	// TopicDistribution holds the document's topic weights as fixed-precision decimals.
	TopicDistribution []string
}

// Metadata returns the record as an index metadata mapping.
// Lists are typed []any so that generic encoders accept them.
func (r MetadataRecord) Metadata() map[string]any {
	topics := make([]any, len(r.Topics))
	for i, t := range r.Topics {
		topics[i] = t
	}
	dist := make([]any, len(r.TopicDistribution))
	for i, v := range r.TopicDistribution {
		dist[i] = v
	}
	return map[string]any{
		MetadataKeyTopics:            topics,
		MetadataKeyTopicDistribution: dist,
	}
}
