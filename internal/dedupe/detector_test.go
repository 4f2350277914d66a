package dedupe

import (
	"testing"

	"photokeeper/internal/models"
)

func TestDetect_EmptyInput(t *testing.T) {
	result := NewDetector().Detect(nil)

	if result.TotalFiles != 0 {
		t.Errorf("total files = %d, want 0", result.TotalFiles)
	}
	if result.UniqueFiles != 0 {
		t.Errorf("unique files = %d, want 0", result.UniqueFiles)
	}
	if len(result.Groups) != 0 {
		t.Errorf("expected no groups, got %d", len(result.Groups))
	}
	if result.TotalDuplicates != 0 {
		t.Errorf("total duplicates = %d, want 0", result.TotalDuplicates)
	}
	if result.DurationMS < 1 {
		t.Errorf("duration = %d ms, want >= 1", result.DurationMS)
	}
}

func TestDetect_ExactScenario(t *testing.T) {
	records := []*models.PhotoRecord{
		{Path: "/a.jpg", ContentHash: "abc", Size: 1000},
		{Path: "/b.jpg", ContentHash: "abc", Size: 1000},
		{Path: "/c.jpg", ContentHash: "xyz", Size: 2000},
	}

	result := NewDetector().Detect(records)

	if result.TotalFiles != 3 {
		t.Errorf("total files = %d, want 3", result.TotalFiles)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}

	g := result.Groups[0]
	if g.Hash != "abc" {
		t.Errorf("hash = %q, want abc", g.Hash)
	}
	if g.DuplicateCount != 1 {
		t.Errorf("duplicate count = %d, want 1", g.DuplicateCount)
	}
	if g.TotalSize != 2000 {
		t.Errorf("total size = %d, want 2000", g.TotalSize)
	}
	if result.UniqueFiles != 2 {
		t.Errorf("unique files = %d, want 2", result.UniqueFiles)
	}
	if result.TotalDuplicates != 1 {
		t.Errorf("total duplicates = %d, want 1", result.TotalDuplicates)
	}
}

func TestDetect_FileAccounting(t *testing.T) {
	records := []*models.PhotoRecord{
		{Path: "/a.jpg", ContentHash: "h1", Size: 100},
		{Path: "/b.jpg", ContentHash: "h1", Size: 100},
		{Path: "/c.jpg", ContentHash: "h1", Size: 100},
		{Path: "/d.jpg", StructuralFP: "f1", Size: 200},
		{Path: "/e.jpg", StructuralFP: "f1", Size: 200},
		{Path: "/f.jpg", ContentHash: "h9", Size: 300},
	}

	result := NewDetector().Detect(records)

	if result.UniqueFiles+result.TotalDuplicates != result.TotalFiles {
		t.Errorf("unique (%d) + duplicates (%d) != total (%d)",
			result.UniqueFiles, result.TotalDuplicates, result.TotalFiles)
	}
}

func TestDetect_WastedSpace(t *testing.T) {
	// Average member size times extra copies: (3000/3)*2 = 2000.
	records := []*models.PhotoRecord{
		{Path: "/a.jpg", ContentHash: "h1", Size: 1000},
		{Path: "/b.jpg", ContentHash: "h1", Size: 1000},
		{Path: "/c.jpg", ContentHash: "h1", Size: 1000},
	}

	result := NewDetector().Detect(records)

	if result.TotalWastedSpace != 2000 {
		t.Errorf("wasted space = %d, want 2000", result.TotalWastedSpace)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	build := func() []*models.PhotoRecord {
		return []*models.PhotoRecord{
			{Path: "/a.jpg", ContentHash: "h1", Size: 100},
			{Path: "/b.jpg", ContentHash: "h1", Size: 100},
			{Path: "/c.jpg", StructuralFP: "f1", Size: 300},
			{Path: "/d.jpg", StructuralFP: "f1", Size: 300},
			{Path: "/e.jpg", ContentHash: "h2", Size: 200},
			{Path: "/f.jpg", ContentHash: "h2", Size: 200},
		}
	}

	first := NewDetector().Detect(build())
	second := NewDetector().Detect(build())

	if len(first.Groups) != len(second.Groups) {
		t.Fatalf("group counts differ: %d vs %d", len(first.Groups), len(second.Groups))
	}
	for i := range first.Groups {
		if first.Groups[i].Hash != second.Groups[i].Hash {
			t.Errorf("group %d hash differs: %q vs %q", i, first.Groups[i].Hash, second.Groups[i].Hash)
		}
	}
	if first.TotalWastedSpace != second.TotalWastedSpace {
		t.Errorf("wasted space differs: %d vs %d", first.TotalWastedSpace, second.TotalWastedSpace)
	}
}

func TestDetect_ProgressStages(t *testing.T) {
	type call struct {
		done, total int
		stage       string
	}
	var calls []call

	records := []*models.PhotoRecord{
		{Path: "/a.jpg", ContentHash: "h1", Size: 100},
		{Path: "/b.jpg", ContentHash: "h1", Size: 100},
	}

	detector := NewDetector(WithDetectProgress(func(done, total int, stage string) {
		calls = append(calls, call{done, total, stage})
	}))
	detector.Detect(records)

	if len(calls) != 2 {
		t.Fatalf("expected 2 progress calls, got %d", len(calls))
	}
	if calls[0] != (call{0, 2, "hashing"}) {
		t.Errorf("first call = %+v, want {0 2 hashing}", calls[0])
	}
	if calls[1] != (call{2, 2, "grouping"}) {
		t.Errorf("second call = %+v, want {2 2 grouping}", calls[1])
	}
}

func TestDetect_UnhashedRecordsExcluded(t *testing.T) {
	// Records whose enrichment failed carry no hash fields and must not
	// join any group (paths do not exist, so enrichment fails here too).
	records := []*models.PhotoRecord{
		{Path: "/missing/a.jpg", Size: 100},
		{Path: "/missing/b.jpg", Size: 100},
	}

	result := NewDetector().Detect(records)

	if len(result.Groups) != 0 {
		t.Errorf("expected no groups for unhashed records, got %d", len(result.Groups))
	}
	if result.UniqueFiles != 2 {
		t.Errorf("unique files = %d, want 2", result.UniqueFiles)
	}
}
