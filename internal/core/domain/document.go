package domain

import "strconv"

// DocumentIDPrefix is prepended to a document's ordinal to form its index id.
const DocumentIDPrefix = "doc_"

// Document is a source item whose text was extracted successfully.
type Document struct {
	// Ordinal is the zero-based position the document took when it joined the corpus.
	// It is the only identity carried through the pipeline.
	Ordinal int

	// URI is the source location, kept for diagnostics only.
	URI string

	// Text is the extracted plain text, trimmed and non-empty.
	Text string
}

// ID returns the vector index id for the document.
func (d Document) ID() string {
	return DocumentID(d.Ordinal)
}

// DocumentID builds the vector index id for an ordinal.
func DocumentID(ordinal int) string {
	return DocumentIDPrefix + strconv.Itoa(ordinal)
}

// Corpus is the ordered set of documents for one run.
// Documents[i].Ordinal == i always holds.
type Corpus struct {
	// Documents in ordinal order.
	Documents []Document

	// Skipped counts source items that failed extraction or produced no text.
	Skipped int
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Documents)
}

// IsEmpty reports whether no document survived extraction.
func (c *Corpus) IsEmpty() bool {
	return c.Len() == 0
}

// Texts returns the document texts in ordinal order.
func (c *Corpus) Texts() []string {
	texts := make([]string, c.Len())
	for i, doc := range c.Documents {
		texts[i] = doc.Text
	}
	return texts
}
