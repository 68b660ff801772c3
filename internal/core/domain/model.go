package domain

// TermCount is one non-zero cell of a TermMatrix row.
type TermCount struct {
	// Term is the index into the vocabulary.
	Term int

	// Count is the number of occurrences in the document.
	Count float64
}

// TermMatrix is a document-major sparse matrix of term counts.
// Row i belongs to the document with ordinal i.
type TermMatrix struct {
	// Vocabulary is the ordered set of retained terms.
	Vocabulary []string

	// Rows holds the non-zero counts of each document, ordered by term index.
	Rows [][]TermCount
}

// NumDocuments returns the number of rows.
func (m *TermMatrix) NumDocuments() int {
	return len(m.Rows)
}

// NumTerms returns the vocabulary size.
func (m *TermMatrix) NumTerms() int {
	return len(m.Vocabulary)
}

// TopicParams configures a topic model fit.
type TopicParams struct {
	// Topics is the number of latent topics to fit.
	Topics int

	// TopWords is the number of terms ranked per topic.
	TopWords int

	// Seed drives every random draw of the fit.
	Seed uint64

	// MaxIter is the number of EM passes over the corpus.
	MaxIter int
}

// TopicFit is the output of a fitted topic model.
type TopicFit struct {
	// DocumentTopics holds one row per document ordinal, one value per topic.
	DocumentTopics [][]float64

	// TopicWords holds, per topic index, the top terms by weight, descending.
	TopicWords [][]string
}

// NumTopics returns the number of fitted topics.
func (f *TopicFit) NumTopics() int {
	return len(f.TopicWords)
}

// DominantTopic returns the highest-weight topic of a document.
// Ties resolve to the lowest topic index.
func (f *TopicFit) DominantTopic(ordinal int) int {
	best := 0
	row := f.DocumentTopics[ordinal]
	for t := 1; t < len(row); t++ {
		if row[t] > row[best] {
			best = t
		}
	}
	return best
}
