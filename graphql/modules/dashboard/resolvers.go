// Package dashboard implements the resolvers for dashboard queries.
package dashboard

import (
	"context"
	"sort"

	"github.com/h108777/ThreatMap/model"
)

// Store loads the stored record sets.
type Store interface {
	ListCVEs(ctx context.Context) ([]model.CVERecord, error)
	ListSources(ctx context.Context) ([]model.SourceRecord, error)
}

// Summarizer computes the aggregate counts.
type Summarizer interface {
	Summary(ctx context.Context) (model.Summary, error)
}

// bucketize converts a grouping map into a list sorted by key so repeated
// queries over the same snapshot return identical output.
func bucketize(groups map[string]int) []map[string]interface{} {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]map[string]interface{}, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, map[string]interface{}{
			"value": key,
			"count": groups[key],
		})
	}
	return buckets
}

// ResolveSummary handles fetching the aggregate counts
func ResolveSummary(ctx context.Context, svc Summarizer) (interface{}, error) {
	summary, err := svc.Summary(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_cves":  summary.TotalCVEs,
		"by_severity": bucketize(summary.BySeverity),
		"by_status":   bucketize(summary.ByStatus),
	}, nil
}

// ResolveCVEs fetches stored vulnerability records, capped at limit
func ResolveCVEs(ctx context.Context, store Store, limit int) (interface{}, error) {
	records, err := store.ListCVEs(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ResolveSources fetches stored source records
func ResolveSources(ctx context.Context, store Store) (interface{}, error) {
	return store.ListSources(ctx)
}
