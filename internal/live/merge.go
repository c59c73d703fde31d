package live

import "github.com/rovicpogi/Stoninonew/internal/domain/attendance"

// MaxRecords caps the displayed list.
const MaxRecords = attendance.MaxLiveLimit

// Merge prepends the records of incoming whose id is not already in current,
// keeping their order, and truncates the result to MaxRecords. It returns the
// new list and how many records were added. Neither input is modified and
// records are never re-sorted, so equal scan times keep server order.
func Merge(current, incoming []attendance.LiveRecord) ([]attendance.LiveRecord, int) {
	if len(incoming) == 0 {
		return current, 0
	}

	seen := make(map[string]struct{}, len(current)+len(incoming))
	for _, r := range current {
		seen[r.ID] = struct{}{}
	}

	fresh := make([]attendance.LiveRecord, 0, len(incoming))
	for _, r := range incoming {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		// incoming may repeat an id within itself
		seen[r.ID] = struct{}{}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return current, 0
	}

	merged := make([]attendance.LiveRecord, 0, min(len(fresh)+len(current), MaxRecords))
	merged = append(merged, fresh...)
	merged = append(merged, current...)
	if len(merged) > MaxRecords {
		merged = merged[:MaxRecords]
	}
	return merged, len(fresh)
}
