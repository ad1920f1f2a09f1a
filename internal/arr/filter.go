package arr

import (
	"strings"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// filterCandidates implements the shared filter clause set. Items already
// carrying the processed tag are always excluded (that tag encodes "done
// this cycle"); the status and ignore-tag clauses only apply on the
// attended pass.
func filterCandidates(t *models.Target, in []models.Candidate, recycled bool) []models.Candidate {
	out := make([]models.Candidate, 0, len(in))
	for _, c := range in {
		if t.Monitored != nil && c.Monitored != *t.Monitored {
			continue
		}
		if HasTag(c, t.TagName) {
			continue
		}
		if t.QualityProfile != "" && !strings.EqualFold(c.QualityProfile, t.QualityProfile) {
			continue
		}
		if !recycled {
			if s := strings.TrimSpace(t.Status); s != "" && !strings.EqualFold(s, "any") && !strings.EqualFold(c.Status, s) {
				continue
			}
			if t.IgnoreTag != "" && HasTag(c, t.IgnoreTag) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// HasTag reports whether the candidate's tag set contains name. The *arr
// servers lowercase tag labels, so the comparison is case-insensitive.
func HasTag(c models.Candidate, name string) bool {
	if name == "" {
		return false
	}
	for _, tag := range c.Tags {
		if strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}
