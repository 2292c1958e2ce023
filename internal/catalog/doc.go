// Package catalog maintains the registry of discovered operations.
//
// Operations enter the catalog through discovery: either a feed document
// ({commands, generatedAt}, JSON or YAML) or live enumeration of a
// connected host. Identity is immutable: once an id is known, later
// passes may refresh description, label and risk but never the id or the
// discovery timestamp. Each new operation is classified (category and
// subcategory from id segments, label humanized from the trailing
// segment, risk from a keyword table with explicit feed override) and
// gets an automatic signature when anything can be inferred: typed feed
// hints first, then names scraped from prose, then id conventions.
//
// The catalog persists a discovery snapshot after each pass and restores
// from it on startup. A bleve in-memory index serves full-text search
// over id, label, description and category.
package catalog
