// Package connectors provides document sources for the topic pipeline.
// Each source lists the raw items of one run and loads their bytes on demand.
package connectors
