package arr

import (
	"testing"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestFilterMonitored(t *testing.T) {
	target := &models.Target{Monitored: boolPtr(true), TagName: "searched"}
	in := []models.Candidate{
		{ID: 1, Title: "kept", Monitored: true},
		{ID: 2, Title: "dropped", Monitored: false},
	}

	out := filterCandidates(target, in, false)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only the monitored candidate, got %+v", out)
	}
}

func TestFilterMonitoredUnset(t *testing.T) {
	target := &models.Target{TagName: "searched"}
	in := []models.Candidate{
		{ID: 1, Monitored: true},
		{ID: 2, Monitored: false},
	}

	if out := filterCandidates(target, in, false); len(out) != 2 {
		t.Fatalf("unset monitored should match both states, got %d", len(out))
	}
}

func TestFilterExcludesProcessedTag(t *testing.T) {
	target := &models.Target{TagName: "searched"}
	in := []models.Candidate{
		{ID: 1, Tags: []string{"Searched"}},
		{ID: 2, Tags: []string{"other"}},
	}

	for _, recycled := range []bool{false, true} {
		out := filterCandidates(target, in, recycled)
		if len(out) != 1 || out[0].ID != 2 {
			t.Fatalf("recycled=%v: processed tag must always exclude, got %+v", recycled, out)
		}
	}
}

func TestFilterQualityProfile(t *testing.T) {
	target := &models.Target{TagName: "searched", QualityProfile: "HD-1080p"}
	in := []models.Candidate{
		{ID: 1, QualityProfile: "hd-1080p"},
		{ID: 2, QualityProfile: "SD"},
	}

	out := filterCandidates(target, in, false)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("profile match should be case-insensitive, got %+v", out)
	}
}

func TestFilterStatusClause(t *testing.T) {
	in := []models.Candidate{
		{ID: 1, Status: "ended"},
		{ID: 2, Status: "continuing"},
	}

	target := &models.Target{TagName: "searched", Status: "ended"}
	out := filterCandidates(target, in, false)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("status clause should keep only ended, got %+v", out)
	}

	// Wildcards match everything.
	for _, status := range []string{"", "any", "Any"} {
		target.Status = status
		if out := filterCandidates(target, in, false); len(out) != 2 {
			t.Fatalf("status %q should match all, got %d", status, len(out))
		}
	}

	// Recycled pass ignores status entirely.
	target.Status = "ended"
	if out := filterCandidates(target, in, true); len(out) != 2 {
		t.Fatalf("recycled pass should skip status clause, got %d", len(out))
	}
}

func TestFilterIgnoreTag(t *testing.T) {
	target := &models.Target{TagName: "searched", IgnoreTag: "skip"}
	in := []models.Candidate{
		{ID: 1, Tags: []string{"skip"}},
		{ID: 2},
	}

	out := filterCandidates(target, in, false)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("ignore tag should exclude on the attended pass, got %+v", out)
	}

	if out := filterCandidates(target, in, true); len(out) != 2 {
		t.Fatalf("recycled pass should skip the ignore-tag clause, got %d", len(out))
	}
}

func TestHasTag(t *testing.T) {
	c := models.Candidate{Tags: []string{"Alpha", "beta"}}
	if !HasTag(c, "alpha") || !HasTag(c, "BETA") {
		t.Fatal("tag match should be case-insensitive")
	}
	if HasTag(c, "gamma") {
		t.Fatal("missing tag reported present")
	}
	if HasTag(c, "") {
		t.Fatal("empty name must never match")
	}
}
