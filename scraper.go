// Package scraper provides a crawl-extract-export pipeline for
// documentation sites. It discovers the page graph of a site up to a
// configurable depth, extracts normalized textual content from each
// discovered page, and exports the corpus in machine-consumable formats
// (line-delimited JSON, a per-document markdown tree, and a single
// relational JSON document) for downstream retrieval pipelines.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., goquery/, http/, crawl/, export/).
package scraper
