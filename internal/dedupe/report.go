package dedupe

import (
	"fmt"
	"strings"

	"photokeeper/internal/models"
)

// maxReportGroups caps how many groups the text report lists.
const maxReportGroups = 10

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with 1024-based units and one
// decimal place: 1536 -> "1.5 KB", 0 -> "0.0 B".
func FormatFileSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// GenerateReport renders a detection result as human-readable text:
// summary block, then up to ten duplicate groups in descending size
// order with a truncation note when more exist.
func GenerateReport(result *models.DetectionResult) string {
	var b strings.Builder

	b.WriteString("=== Duplicate Detection Report ===\n\n")
	fmt.Fprintf(&b, "Total files:      %d\n", result.TotalFiles)
	fmt.Fprintf(&b, "Unique files:     %d\n", result.UniqueFiles)
	fmt.Fprintf(&b, "Duplicate groups: %d\n", len(result.Groups))
	fmt.Fprintf(&b, "Duplicates:       %d\n", result.TotalDuplicates)
	fmt.Fprintf(&b, "Wasted space:     %s (estimated)\n", FormatFileSize(result.TotalWastedSpace))
	fmt.Fprintf(&b, "Detection time:   %.1fs\n", float64(result.DurationMS)/1000)

	if len(result.Groups) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	shown := result.Groups
	if len(shown) > maxReportGroups {
		shown = shown[:maxReportGroups]
	}

	for i, g := range shown {
		fmt.Fprintf(&b, "Group %d [%s] - %d files, %s\n", i+1, g.Kind, len(g.Files), FormatFileSize(g.TotalSize))
		for _, f := range g.Files {
			fmt.Fprintf(&b, "  %s\n", f.Path)
		}
	}

	if rest := len(result.Groups) - maxReportGroups; rest > 0 {
		fmt.Fprintf(&b, "\n... and %d more duplicate groups\n", rest)
	}

	return b.String()
}
