package dedupe

import (
	"fmt"
	"strings"
	"testing"

	"photokeeper/internal/models"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0.0 B"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
		{1099511627776, "1.0 TB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.expected {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestGenerateReport_Summary(t *testing.T) {
	result := &models.DetectionResult{
		TotalFiles:       10,
		UniqueFiles:      8,
		TotalDuplicates:  2,
		TotalWastedSpace: 2048,
		DurationMS:       1500,
		Groups: []*models.DuplicateGroup{
			{
				Hash: "abc",
				Kind: models.KindExact,
				Files: []*models.PhotoRecord{
					{Path: "/a.jpg", Size: 1024},
					{Path: "/b.jpg", Size: 1024},
				},
				TotalSize:      2048,
				DuplicateCount: 1,
			},
		},
	}

	report := GenerateReport(result)

	for _, want := range []string{
		"Total files:      10",
		"Unique files:     8",
		"Duplicates:       2",
		"Wasted space:     2.0 KB (estimated)",
		"Detection time:   1.5s",
		"Group 1 [exact] - 2 files, 2.0 KB",
		"/a.jpg",
		"/b.jpg",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestGenerateReport_NoGroups(t *testing.T) {
	report := GenerateReport(&models.DetectionResult{TotalFiles: 5, UniqueFiles: 5, DurationMS: 1})

	if !strings.Contains(report, "Duplicate groups: 0") {
		t.Errorf("report should state zero groups:\n%s", report)
	}
	if strings.Contains(report, "Group 1") {
		t.Errorf("report should list no groups:\n%s", report)
	}
}

func TestGenerateReport_TruncatesAfterTen(t *testing.T) {
	result := &models.DetectionResult{DurationMS: 1}
	for i := 0; i < 13; i++ {
		result.Groups = append(result.Groups, &models.DuplicateGroup{
			Hash: fmt.Sprintf("h%02d", i),
			Kind: models.KindExact,
			Files: []*models.PhotoRecord{
				{Path: fmt.Sprintf("/a%d.jpg", i), Size: 100},
				{Path: fmt.Sprintf("/b%d.jpg", i), Size: 100},
			},
			TotalSize:      200,
			DuplicateCount: 1,
		})
	}

	report := GenerateReport(result)

	if !strings.Contains(report, "Group 10") {
		t.Errorf("report should list the tenth group:\n%s", report)
	}
	if strings.Contains(report, "Group 11") {
		t.Errorf("report should stop at ten groups:\n%s", report)
	}
	if !strings.Contains(report, "... and 3 more duplicate groups") {
		t.Errorf("report missing truncation note:\n%s", report)
	}
}
