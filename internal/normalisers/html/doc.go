// Package html extracts readable text from HTML documents, dropping
// scripts, styles and markup and decoding entities.
package html
