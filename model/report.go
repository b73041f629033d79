package model

// IngestionReport accumulates the outcome of one ingestion run.
// Per-record failures are counted rather than aborting the batch.
type IngestionReport struct {
	VulnerabilitiesWritten int      `json:"vulnerabilities_written"`
	VulnerabilitiesFailed  int      `json:"vulnerabilities_failed"`
	SourcesWritten         int      `json:"sources_written"`
	SourcesFailed          int      `json:"sources_failed"`
	FailedIDs              []string `json:"failed_ids,omitempty"`
}

// Summary holds the aggregate counts over all stored vulnerability records.
// The empty string is a valid group key for records missing severity or status.
type Summary struct {
	TotalCVEs  int            `json:"total_cves"`
	BySeverity map[string]int `json:"by_severity"`
	ByStatus   map[string]int `json:"by_status"`
}
