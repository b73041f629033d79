package nvd

import (
	"errors"
	"fmt"

	"github.com/h108777/ThreatMap/model"
	"github.com/tidwall/gjson"
)

// ErrMalformedSource marks a raw source entry missing one of its required fields.
var ErrMalformedSource = errors.New("malformed source record")

// NormalizeVulnerability maps one raw feed entry into a CVERecord. Missing
// fields default to the empty string; this never fails. Only the legacy v2
// metric list is consulted for severity; newer metric versions are ignored.
func NormalizeVulnerability(raw gjson.Result) model.CVERecord {
	cve := raw.Get("cve")

	description := ""
	for _, d := range cve.Get("descriptions").Array() {
		if d.Get("lang").String() == "en" {
			description = d.Get("value").String()
			break
		}
	}

	severity := ""
	if metrics := cve.Get("metrics.cvssMetricV2").Array(); len(metrics) > 0 {
		severity = metrics[0].Get("baseSeverity").String()
	}

	return model.CVERecord{
		ID:          cve.Get("id").String(),
		Description: description,
		Published:   cve.Get("published").String(),
		Status:      cve.Get("vulnStatus").String(),
		Severity:    severity,
		Source:      cve.Get("sourceIdentifier").String(),
	}
}

// NormalizeSource maps one raw source entry into a SourceRecord. Unlike
// vulnerability normalization this is strict: a missing identifier list, name
// or contact email fails with ErrMalformedSource. The last identifier wins as
// the primary key.
func NormalizeSource(raw gjson.Result) (model.SourceRecord, error) {
	ids := raw.Get("sourceIdentifiers").Array()
	if len(ids) == 0 {
		return model.SourceRecord{}, fmt.Errorf("%w: missing sourceIdentifiers", ErrMalformedSource)
	}

	name := raw.Get("name")
	if !name.Exists() {
		return model.SourceRecord{}, fmt.Errorf("%w: missing name", ErrMalformedSource)
	}

	contact := raw.Get("contactEmail")
	if !contact.Exists() {
		return model.SourceRecord{}, fmt.Errorf("%w: missing contactEmail", ErrMalformedSource)
	}

	return model.SourceRecord{
		ID:      ids[len(ids)-1].String(),
		Name:    name.String(),
		Contact: contact.String(),
	}, nil
}
