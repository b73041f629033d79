// Package analysis tabulates stored vulnerability records.
package analysis

import (
	"context"

	"github.com/h108777/ThreatMap/model"
)

// CVELister loads the full vulnerability record set.
type CVELister interface {
	ListCVEs(ctx context.Context) ([]model.CVERecord, error)
}

// Summarize counts records by severity and by status independently. The empty
// string is a valid group key. Deterministic for a fixed snapshot; map
// iteration order carries no guarantee.
func Summarize(records []model.CVERecord) model.Summary {
	summary := model.Summary{
		BySeverity: make(map[string]int),
		ByStatus:   make(map[string]int),
	}

	for _, rec := range records {
		summary.TotalCVEs++
		summary.BySeverity[rec.Severity]++
		summary.ByStatus[rec.Status]++
	}

	return summary
}

// Service computes summaries over the stored record set.
type Service struct {
	store CVELister
}

// NewService builds the aggregation service over the given store.
func NewService(store CVELister) *Service {
	return &Service{store: store}
}

// Summary loads every stored record and tabulates the counts.
func (s *Service) Summary(ctx context.Context) (model.Summary, error) {
	records, err := s.store.ListCVEs(ctx)
	if err != nil {
		return model.Summary{}, err
	}
	return Summarize(records), nil
}
