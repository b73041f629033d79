// Package ingest orchestrates feed fetching, normalization and document writes.
package ingest

import (
	"context"

	"github.com/h108777/ThreatMap/internal/nvd"
	"github.com/h108777/ThreatMap/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Fetcher requests pages from the vulnerability feed and its sources feed.
type Fetcher interface {
	FetchVulnerabilityPage(ctx context.Context) (gjson.Result, error)
	FetchSourcePage(ctx context.Context) (gjson.Result, error)
}

// Store upserts normalized records by id.
type Store interface {
	UpsertCVE(ctx context.Context, rec model.CVERecord) error
	UpsertSource(ctx context.Context, rec model.SourceRecord) error
}

// Job pulls one page from each feed, normalizes every entry and upserts it.
// A normalization or write failure for one entry is logged and counted but
// does not stop processing of subsequent entries.
type Job struct {
	fetcher Fetcher
	store   Store
	log     *zap.SugaredLogger
}

// NewJob builds an ingestion job over the given fetcher and store.
func NewJob(fetcher Fetcher, store Store, log *zap.SugaredLogger) *Job {
	return &Job{fetcher: fetcher, store: store, log: log}
}

// Run executes one ingestion pass and folds per-record outcomes into a
// report. The two feed calls are independent; a failed vulnerability fetch
// does not prevent source processing. The returned error is non-nil when at
// least one feed page could not be fetched at all.
func (j *Job) Run(ctx context.Context) (model.IngestionReport, error) {
	var report model.IngestionReport
	var fetchErr error

	page, err := j.fetcher.FetchVulnerabilityPage(ctx)
	if err != nil {
		j.log.Errorw("vulnerability page fetch failed", "error", err)
		fetchErr = err
	} else {
		for _, raw := range page.Get("vulnerabilities").Array() {
			rec := nvd.NormalizeVulnerability(raw)
			if err := j.store.UpsertCVE(ctx, rec); err != nil {
				report.VulnerabilitiesFailed++
				report.FailedIDs = append(report.FailedIDs, rec.ID)
				j.log.Errorw("cve upsert failed", "id", rec.ID, "error", err)
				continue
			}
			report.VulnerabilitiesWritten++
		}
	}

	page, err = j.fetcher.FetchSourcePage(ctx)
	if err != nil {
		j.log.Errorw("source page fetch failed", "error", err)
		if fetchErr == nil {
			fetchErr = err
		}
	} else {
		for _, raw := range page.Get("sources").Array() {
			rec, err := nvd.NormalizeSource(raw)
			if err != nil {
				report.SourcesFailed++
				j.log.Errorw("source normalization failed", "name", raw.Get("name").String(), "error", err)
				continue
			}
			if err := j.store.UpsertSource(ctx, rec); err != nil {
				report.SourcesFailed++
				report.FailedIDs = append(report.FailedIDs, rec.ID)
				j.log.Errorw("source upsert failed", "id", rec.ID, "error", err)
				continue
			}
			report.SourcesWritten++
		}
	}

	j.log.Infow("ingestion run finished",
		"cves_written", report.VulnerabilitiesWritten,
		"cves_failed", report.VulnerabilitiesFailed,
		"sources_written", report.SourcesWritten,
		"sources_failed", report.SourcesFailed)

	return report, fetchErr
}
