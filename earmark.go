// Package earmark aggregates audiobook metadata and playable chapter
// lists from heterogeneous third-party sites. A single generic extraction
// engine is driven by per-site declarative rule sets (CSS selectors and
// URL templates), so adding a selector-driven site requires only new
// catalog data, never new code. Sources backed by a structured API
// instead of HTML (archive.org) plug in as an alternate strategy that
// produces the same normalized records.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, gofeed/).
package earmark
