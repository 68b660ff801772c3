// Package normalisers provides implementations of the TextExtractor interface
// for various document formats. Each extractor knows how to pull plain text
// out of a specific MIME type.
//
// Extractors are registered with the Registry at startup.
package normalisers
