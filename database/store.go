package database

import (
	"context"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/h108777/ThreatMap/model"
)

// Store exposes the typed document operations over the cves and sources
// collections. Writes are upserts by key: last write wins, no merge of prior
// and new field values.
type Store struct {
	db DBConnection
}

// NewStore wraps an initialized database connection.
func NewStore(db DBConnection) *Store {
	return &Store{db: db}
}

// UpsertCVE writes or fully replaces the vulnerability record keyed by its id.
func (s *Store) UpsertCVE(ctx context.Context, rec model.CVERecord) error {
	query := `
		UPSERT { _key: @key }
		INSERT {
			_key: @key,
			id: @id,
			description: @description,
			published: @published,
			status: @status,
			severity: @severity,
			source: @source
		}
		REPLACE {
			_key: @key,
			id: @id,
			description: @description,
			published: @published,
			status: @status,
			severity: @severity,
			source: @source
		} IN cves
	`
	bindVars := map[string]interface{}{
		"key":         rec.ID,
		"id":          rec.ID,
		"description": rec.Description,
		"published":   rec.Published,
		"status":      rec.Status,
		"severity":    rec.Severity,
		"source":      rec.Source,
	}
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	return err
}

// UpsertSource writes or fully replaces the source record keyed by its id.
func (s *Store) UpsertSource(ctx context.Context, rec model.SourceRecord) error {
	query := `
		UPSERT { _key: @key }
		INSERT { _key: @key, id: @id, name: @name, contact: @contact }
		REPLACE { _key: @key, id: @id, name: @name, contact: @contact } IN sources
	`
	bindVars := map[string]interface{}{
		"key":     rec.ID,
		"id":      rec.ID,
		"name":    rec.Name,
		"contact": rec.Contact,
	}
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	return err
}

// ListCVEs loads the full vulnerability collection. Cost is linear in the
// number of stored records; the read surface has no pagination.
func (s *Store) ListCVEs(ctx context.Context) ([]model.CVERecord, error) {
	query := `FOR c IN cves RETURN c`
	cursor, err := s.db.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	records := []model.CVERecord{}
	for cursor.HasMore() {
		var rec model.CVERecord
		if _, err := cursor.ReadDocument(ctx, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ListSources loads the full source collection.
func (s *Store) ListSources(ctx context.Context) ([]model.SourceRecord, error) {
	query := `FOR s IN sources RETURN s`
	cursor, err := s.db.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	records := []model.SourceRecord{}
	for cursor.HasMore() {
		var rec model.SourceRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}
