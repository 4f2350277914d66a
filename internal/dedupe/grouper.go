package dedupe

import (
	"sort"

	"photokeeper/internal/models"
)

// GroupByContentHash buckets records by content hash and returns a group
// for every hash shared by two or more records. Records without a content
// hash are excluded from this pass entirely.
func GroupByContentHash(records []*models.PhotoRecord) []*models.DuplicateGroup {
	buckets := make(map[string][]*models.PhotoRecord)
	for _, r := range records {
		if r.ContentHash != "" {
			buckets[r.ContentHash] = append(buckets[r.ContentHash], r)
		}
	}
	return buildGroups(buckets, models.KindExact)
}

// GroupByFingerprint buckets records by structural fingerprint and returns
// a group for every fingerprint shared by two or more records. Records
// without a fingerprint are excluded from this pass entirely.
func GroupByFingerprint(records []*models.PhotoRecord) []*models.DuplicateGroup {
	buckets := make(map[string][]*models.PhotoRecord)
	for _, r := range records {
		if r.StructuralFP != "" {
			buckets[r.StructuralFP] = append(buckets[r.StructuralFP], r)
		}
	}
	return buildGroups(buckets, models.KindStructural)
}

// buildGroups materializes buckets with 2+ members as duplicate groups,
// ordered descending by total size. Ties sort ascending by hash so
// repeated runs produce identical output.
func buildGroups(buckets map[string][]*models.PhotoRecord, kind models.HashKind) []*models.DuplicateGroup {
	var groups []*models.DuplicateGroup
	for hash, files := range buckets {
		if len(files) < 2 {
			continue
		}

		var totalSize int64
		for _, f := range files {
			totalSize += f.Size
		}

		groups = append(groups, &models.DuplicateGroup{
			Hash:           hash,
			Kind:           kind,
			Files:          files,
			TotalSize:      totalSize,
			DuplicateCount: len(files) - 1,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalSize != groups[j].TotalSize {
			return groups[i].TotalSize > groups[j].TotalSize
		}
		return groups[i].Hash < groups[j].Hash
	})

	return groups
}

// MergeGroups combines exact and structural groups with exact-match
// precedence: a structural group is kept only if none of its member
// paths already appear in any exact group. A file is therefore never
// reported as a duplicate under two hash kinds at once. Ordering is the
// sorted exact groups followed by the sorted surviving structural groups.
func MergeGroups(exact, structural []*models.DuplicateGroup) []*models.DuplicateGroup {
	merged := make([]*models.DuplicateGroup, 0, len(exact)+len(structural))
	merged = append(merged, exact...)

	exactPaths := make(map[string]bool)
	for _, g := range exact {
		for _, f := range g.Files {
			exactPaths[f.Path] = true
		}
	}

	for _, g := range structural {
		overlaps := false
		for _, f := range g.Files {
			if exactPaths[f.Path] {
				overlaps = true
				break
			}
		}
		if !overlaps {
			merged = append(merged, g)
		}
	}

	return merged
}
