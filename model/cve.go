// Package model provides data models for the ThreatMap system.
package model

// CVERecord is the flat persisted shape of one NVD vulnerability entry.
// The document key mirrors the CVE id so the store enforces uniqueness per id.
type CVERecord struct {
	Key         string `json:"_key,omitempty"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Published   string `json:"published"` // ISO-8601 string as provided upstream, not reparsed
	Status      string `json:"status"`
	Severity    string `json:"severity"`
	Source      string `json:"source"`
}

// SourceRecord is the flat persisted shape of one NVD source entry.
// The id is the last upstream identifier (most recently added wins).
type SourceRecord struct {
	Key     string `json:"_key,omitempty"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
