package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/h108777/ThreatMap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	vulnPage string
	srcPage  string
	vulnErr  error
	srcErr   error
}

func (f *fakeFetcher) FetchVulnerabilityPage(_ context.Context) (gjson.Result, error) {
	if f.vulnErr != nil {
		return gjson.Result{}, f.vulnErr
	}
	return gjson.Parse(f.vulnPage), nil
}

func (f *fakeFetcher) FetchSourcePage(_ context.Context) (gjson.Result, error) {
	if f.srcErr != nil {
		return gjson.Result{}, f.srcErr
	}
	return gjson.Parse(f.srcPage), nil
}

type fakeStore struct {
	mu      sync.Mutex
	cves    map[string]model.CVERecord
	sources map[string]model.SourceRecord
	failIDs map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cves:    make(map[string]model.CVERecord),
		sources: make(map[string]model.SourceRecord),
		failIDs: make(map[string]bool),
	}
}

func (s *fakeStore) UpsertCVE(_ context.Context, rec model.CVERecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[rec.ID] {
		return errors.New("write refused")
	}
	s.cves[rec.ID] = rec
	return nil
}

func (s *fakeStore) UpsertSource(_ context.Context, rec model.SourceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[rec.ID] {
		return errors.New("write refused")
	}
	s.sources[rec.ID] = rec
	return nil
}

func (s *fakeStore) cve(id string) (model.CVERecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.cves[id]
	return rec, ok
}

func newTestJob(fetcher Fetcher, store Store) *Job {
	return NewJob(fetcher, store, zap.NewNop().Sugar())
}

func TestRunDefaultsEntryMissingCVEObject(t *testing.T) {
	// Entry 2 has no cve object at all; normalization defaults rather than fails
	fetcher := &fakeFetcher{
		vulnPage: `{"vulnerabilities": [
			{"cve": {"id": "CVE-2024-0001"}},
			{},
			{"cve": {"id": "CVE-2024-0002"}}
		]}`,
		srcPage: `{"sources": []}`,
	}
	store := newFakeStore()

	report, err := newTestJob(fetcher, store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.VulnerabilitiesWritten)
	assert.Equal(t, 0, report.VulnerabilitiesFailed)

	for _, id := range []string{"CVE-2024-0001", "", "CVE-2024-0002"} {
		_, ok := store.cve(id)
		assert.True(t, ok, "expected %q in store", id)
	}
}

func TestRunIsolatesPerRecordWriteFailures(t *testing.T) {
	fetcher := &fakeFetcher{
		vulnPage: `{"vulnerabilities": [
			{"cve": {"id": "CVE-2024-0001"}},
			{"cve": {"id": "CVE-2024-0002"}},
			{"cve": {"id": "CVE-2024-0003"}}
		]}`,
		srcPage: `{"sources": []}`,
	}
	store := newFakeStore()
	store.failIDs["CVE-2024-0002"] = true

	report, err := newTestJob(fetcher, store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.VulnerabilitiesWritten)
	assert.Equal(t, 1, report.VulnerabilitiesFailed)
	assert.Equal(t, []string{"CVE-2024-0002"}, report.FailedIDs)

	_, ok := store.cve("CVE-2024-0003")
	assert.True(t, ok, "failure must not stop subsequent entries")
}

func TestRunStrictSourceNormalization(t *testing.T) {
	fetcher := &fakeFetcher{
		vulnPage: `{"vulnerabilities": []}`,
		srcPage: `{"sources": [
			{"name": "MITRE", "contactEmail": "cve@mitre.org", "sourceIdentifiers": ["cve@mitre.org"]},
			{"name": "Broken"}
		]}`,
	}
	store := newFakeStore()

	report, err := newTestJob(fetcher, store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.SourcesWritten)
	assert.Equal(t, 1, report.SourcesFailed)
	assert.Contains(t, store.sources, "cve@mitre.org")
}

func TestRunFetchFailureStillProcessesOtherFeed(t *testing.T) {
	fetcher := &fakeFetcher{
		vulnErr: errors.New("feed down"),
		srcPage: `{"sources": [
			{"name": "MITRE", "contactEmail": "cve@mitre.org", "sourceIdentifiers": ["cve@mitre.org"]}
		]}`,
	}
	store := newFakeStore()

	report, err := newTestJob(fetcher, store).Run(context.Background())
	require.Error(t, err)

	assert.Equal(t, 0, report.VulnerabilitiesWritten)
	assert.Equal(t, 1, report.SourcesWritten)
}

func TestConcurrentRunsLastWriteWins(t *testing.T) {
	// Two concurrent runs upsert the same id with different published values;
	// the store must end up holding exactly one of the two, never a merge.
	store := newFakeStore()

	page := func(published string) string {
		return `{"vulnerabilities": [{"cve": {"id": "CVE-2024-0001", "published": "` + published + `"}}]}`
	}

	jobA := newTestJob(&fakeFetcher{vulnPage: page("2024-01-01T00:00:00.000"), srcPage: `{}`}, store)
	jobB := newTestJob(&fakeFetcher{vulnPage: page("2024-02-02T00:00:00.000"), srcPage: `{}`}, store)

	var wg sync.WaitGroup
	for _, job := range []*Job{jobA, jobB} {
		wg.Add(1)
		go func(j *Job) {
			defer wg.Done()
			_, _ = j.Run(context.Background())
		}(job)
	}
	wg.Wait()

	rec, ok := store.cve("CVE-2024-0001")
	require.True(t, ok)
	assert.Contains(t, []string{"2024-01-01T00:00:00.000", "2024-02-02T00:00:00.000"}, rec.Published)
}
