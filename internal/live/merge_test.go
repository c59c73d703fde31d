package live

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func rec(id string, sec int) attendance.LiveRecord {
	return attendance.LiveRecord{
		ID:          id,
		StudentName: "Student " + id,
		GradeLevel:  "Grade 7",
		Section:     "Sampaguita",
		ScanTime:    base.Add(time.Duration(sec) * time.Second),
		Status:      attendance.StatusPresent,
		RFIDCard:    "CARD" + id,
	}
}

// newestFirst builds n records with strictly decreasing scan times starting at top.
func newestFirst(prefix string, top, n int) []attendance.LiveRecord {
	out := make([]attendance.LiveRecord, n)
	for i := range out {
		out[i] = rec(fmt.Sprintf("%s%d", prefix, top-i), top-i)
	}
	return out
}

func ids(records []attendance.LiveRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestMerge_EmptyIncomingIsIdentity(t *testing.T) {
	for _, n := range []int{0, 1, 7, MaxRecords} {
		current := newestFirst("r", 100, n)
		merged, added := Merge(current, nil)
		assert.Equal(t, current, merged)
		assert.Zero(t, added)

		merged, added = Merge(current, []attendance.LiveRecord{})
		assert.Equal(t, current, merged)
		assert.Zero(t, added)
	}
}

func TestMerge_PrependsInGivenOrder(t *testing.T) {
	current := []attendance.LiveRecord{rec("r3", 3), rec("r2", 2), rec("r1", 1)}
	merged, added := Merge(current, []attendance.LiveRecord{rec("r5", 5), rec("r4", 4)})

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"r5", "r4", "r3", "r2", "r1"}, ids(merged))
	assert.Equal(t, []string{"r3", "r2", "r1"}, ids(current), "input untouched")
}

func TestMerge_DropsDuplicates(t *testing.T) {
	current := []attendance.LiveRecord{rec("r3", 3), rec("r2", 2)}
	incoming := []attendance.LiveRecord{rec("r4", 4), rec("r3", 3), rec("r4", 4)}

	merged, added := Merge(current, incoming)
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"r4", "r3", "r2"}, ids(merged))
}

func TestMerge_TiesKeepServerOrder(t *testing.T) {
	a, b := rec("b", 5), rec("a", 5)
	merged, _ := Merge(nil, []attendance.LiveRecord{a, b})
	assert.Equal(t, []string{"b", "a"}, ids(merged))
}

func TestMerge_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		top := 200 + rng.Intn(100)
		current := newestFirst("r", top, rng.Intn(MaxRecords+1))

		// incoming is what a since-query can return: newer records, plus
		// echoes of ones already shown, never anything older than the list
		lowest := top - len(current) + 1
		if len(current) == 0 {
			lowest = 0
		}
		newTop := top + rng.Intn(80)
		incoming := newestFirst("r", newTop, rng.Intn(min(70, newTop-lowest+1)+1))

		merged, added := Merge(current, incoming)

		require.LessOrEqual(t, len(merged), MaxRecords, "cap")
		require.GreaterOrEqual(t, added, 0)

		seen := map[string]bool{}
		for _, r := range merged {
			require.False(t, seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
		}

		for j := 1; j < len(merged); j++ {
			require.False(t, merged[j].ScanTime.After(merged[j-1].ScanTime), "newest first at %d", j)
		}
	}
}

func TestMerge_CapDropsOldest(t *testing.T) {
	current := newestFirst("r", 50, MaxRecords)
	merged, added := Merge(current, []attendance.LiveRecord{rec("new", 60)})

	require.Len(t, merged, MaxRecords)
	assert.Equal(t, 1, added)
	assert.Equal(t, "new", merged[0].ID)
	assert.Equal(t, "r2", merged[MaxRecords-1].ID)
}
