// Package pmbatch contains tools to fetch bibliographic records from PubMed
// in fixed-size batches and to turn the stored raw XML documents into flat
// tables: one for article identifiers, one for article metadata.
package pmbatch

const (
	AppName = "pmbatch"
	Version = "0.1.0"
)
