package services

import (
	"strconv"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

// DistributionPrecision is the number of fractional digits of each
// topic_distribution entry.
const DistributionPrecision = 10

// FormatDistribution renders topic weights as fixed-precision decimal strings.
func FormatDistribution(weights []float64) []string {
	out := make([]string, len(weights))
	for i, w := range weights {
		out[i] = strconv.FormatFloat(w, 'f', DistributionPrecision, 64)
	}
	return out
}

// BuildRecords derives one metadata record per paired document, in ordinal
// order, and returns how many documents were left unpaired.
//
// Dominant pairing gives each document the ranking of its highest-weight
// topic and pairs every document. Positional pairing gives document i the
// ranking of topic i, so only the first min(documents, topics) are paired.
func BuildRecords(corpus *domain.Corpus, fit *domain.TopicFit, mode domain.PairingMode) ([]domain.MetadataRecord, int) {
	n := corpus.Len()
	if mode == domain.PairingPositional && fit.NumTopics() < n {
		n = fit.NumTopics()
	}

	records := make([]domain.MetadataRecord, n)
	for i := 0; i < n; i++ {
		topic := i
		if mode != domain.PairingPositional {
			topic = fit.DominantTopic(i)
		}
		records[i] = domain.MetadataRecord{
			ID:                domain.DocumentID(i),
			Ordinal:           i,
			Topics:            append([]string(nil), fit.TopicWords[topic]...),
			TopicDistribution: FormatDistribution(fit.DocumentTopics[i]),
		}
	}
	return records, corpus.Len() - n
}
