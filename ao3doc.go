// Package ao3doc scrapes a single Archive of Our Own work page into a typed
// document model: metadata fields, classification tags, the chapter index
// and the body as paragraphs of styled text spans.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package ao3doc
