package services

import (
	"math/rand"
	"testing"
	"time"

	"dnu_asset/constants"
	"dnu_asset/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	// Hai khoảng chạm đầu-cuối thì không tính là chồng chéo
	assert.False(t, overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.False(t, overlaps(at(10, 0), at(11, 0), at(9, 0), at(10, 0)))

	assert.True(t, overlaps(at(9, 0), at(10, 30), at(10, 0), at(11, 0)))
	assert.True(t, overlaps(at(9, 0), at(12, 0), at(10, 0), at(11, 0)))
	assert.True(t, overlaps(at(10, 15), at(10, 45), at(10, 0), at(11, 0)))
	assert.False(t, overlaps(at(8, 0), at(9, 0), at(10, 0), at(11, 0)))
}

func TestIntervalIndexConflicts(t *testing.T) {
	idx := NewIntervalIndex()
	key := ResourceKey{Kind: ResourceRoom, ID: 1}
	idx.Add(key, IntervalRecord{ID: 1, Code: "BK-A", Start: at(9, 0), End: at(10, 0)})
	idx.Add(key, IntervalRecord{ID: 2, Code: "BK-B", Start: at(10, 0), End: at(11, 0)})

	// Đặt sát lưng nhau không đụng độ
	conflicts := idx.Conflicts(key, at(11, 0), at(12, 0), 0)
	assert.Empty(t, conflicts)

	conflicts = idx.Conflicts(key, at(9, 30), at(10, 30), 0)
	require.Len(t, conflicts, 2)

	// Tài nguyên khác loại cùng ID không nhìn thấy nhau
	assetKey := ResourceKey{Kind: ResourceAsset, ID: 1}
	assert.False(t, idx.Overlaps(assetKey, at(9, 0), at(10, 0), 0))
}

func TestIntervalIndexExcludeSelf(t *testing.T) {
	idx := NewIntervalIndex()
	key := ResourceKey{Kind: ResourceRoom, ID: 7}
	idx.Add(key, IntervalRecord{ID: 42, Code: "BK-X", Start: at(9, 0), End: at(10, 0)})

	// Bản ghi tự kiểm tra lại sau khi dời giờ: loại chính nó ra
	assert.True(t, idx.Overlaps(key, at(9, 30), at(10, 30), 0))
	assert.False(t, idx.Overlaps(key, at(9, 30), at(10, 30), 42))
}

func TestLoanRequestWindowBlockedUntilReturned(t *testing.T) {
	day := func(d, hour int) time.Time {
		return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
	}
	key := ResourceKey{Kind: ResourceAsset, ID: 9}
	buildIndex := func(loans []models.Lending) *IntervalIndex {
		idx := NewIntervalIndex()
		for _, l := range loans {
			if !l.IsBlocking() {
				continue
			}
			idx.Add(key, IntervalRecord{ID: l.ID, Code: l.Code, Start: l.DateBorrow, End: l.DateExpectedReturn})
		}
		return idx
	}

	l1 := models.Lending{ID: 1, Code: "LD-A", AssetID: 9,
		DateBorrow:         day(10, 9),
		DateExpectedReturn: day(12, 17),
		Status:             constants.LendingStatusApproved}

	// Gửi yêu cầu mượn trùng khoảng với phiếu đã duyệt phải bị chặn
	// ngay từ lúc yêu cầu, kèm phiếu gây đụng độ
	idx := buildIndex([]models.Lending{l1})
	conflicts := idx.Conflicts(key, day(11, 0), day(11, 23), 0)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "LD-A", conflicts[0].Code)

	// Phiếu đã trả không chặn nữa, yêu cầu y hệt được chấp nhận
	l1.Status = constants.LendingStatusReturned
	idx = buildIndex([]models.Lending{l1})
	assert.Empty(t, idx.Conflicts(key, day(11, 0), day(11, 23), 0))
}

func TestFreeSlotsBasic(t *testing.T) {
	blocking := []IntervalRecord{
		{ID: 1, Start: at(10, 0), End: at(11, 0)},
		{ID: 2, Start: at(14, 0), End: at(15, 30)},
	}
	slots := FreeSlots(at(8, 0), at(18, 0), blocking, 0)
	require.Len(t, slots, 3)
	assert.Equal(t, Interval{Start: at(8, 0), End: at(10, 0)}, slots[0])
	assert.Equal(t, Interval{Start: at(11, 0), End: at(14, 0)}, slots[1])
	assert.Equal(t, Interval{Start: at(15, 30), End: at(18, 0)}, slots[2])
}

func TestFreeSlotsMinDuration(t *testing.T) {
	blocking := []IntervalRecord{
		{ID: 1, Start: at(8, 15), End: at(12, 0)},
		{ID: 2, Start: at(12, 30), End: at(17, 45)},
	}
	// Khe 15 phút đầu ngày và cuối ngày bị lọc, chỉ còn khe 30 phút giữa trưa
	slots := FreeSlots(at(8, 0), at(18, 0), blocking, 30*time.Minute)
	require.Len(t, slots, 1)
	assert.Equal(t, Interval{Start: at(12, 0), End: at(12, 30)}, slots[0])
}

func TestFreeSlotsOverlappingAndOutOfWindow(t *testing.T) {
	blocking := []IntervalRecord{
		// Bắt đầu trước khung giờ làm việc
		{ID: 1, Start: at(7, 0), End: at(9, 0)},
		// Hai khoảng chồng lên nhau
		{ID: 2, Start: at(10, 0), End: at(12, 0)},
		{ID: 3, Start: at(11, 0), End: at(13, 0)},
		// Ngoài khung hoàn toàn
		{ID: 4, Start: at(19, 0), End: at(20, 0)},
	}
	slots := FreeSlots(at(8, 0), at(18, 0), blocking, 0)
	require.Len(t, slots, 2)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(10, 0)}, slots[0])
	assert.Equal(t, Interval{Start: at(13, 0), End: at(18, 0)}, slots[1])
}

func TestFreeSlotsEmptyDay(t *testing.T) {
	slots := FreeSlots(at(8, 0), at(18, 0), nil, 0)
	require.Len(t, slots, 1)
	assert.Equal(t, Interval{Start: at(8, 0), End: at(18, 0)}, slots[0])
}

// Với minDuration = 0, các khoảng trống cộng các khoảng chặn phải lát kín
// khung giờ: không khoảng trống nào chồng lên khoảng chặn nào.
func TestFreeSlotsTilingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		windowStart := at(8, 0)
		windowEnd := at(18, 0)

		var blocking []IntervalRecord
		n := rng.Intn(8)
		for i := 0; i < n; i++ {
			startMin := rng.Intn(600)
			durMin := 15 + rng.Intn(180)
			s := windowStart.Add(time.Duration(startMin) * time.Minute)
			blocking = append(blocking, IntervalRecord{
				ID:    uint(i + 1),
				Start: s,
				End:   s.Add(time.Duration(durMin) * time.Minute),
			})
		}

		slots := FreeSlots(windowStart, windowEnd, blocking, 0)

		for _, slot := range slots {
			assert.True(t, slot.Start.Before(slot.End), "khoảng trống rỗng hoặc đảo ngược")
			assert.False(t, slot.Start.Before(windowStart))
			assert.False(t, slot.End.After(windowEnd))
			for _, b := range blocking {
				assert.False(t, overlaps(slot.Start, slot.End, b.Start, b.End),
					"khoảng trống %v-%v chồng lên khoảng chặn %v-%v",
					slot.Start, slot.End, b.Start, b.End)
			}
		}

		// Tổng thời lượng trống + phần chặn nằm trong khung = độ dài khung
		var freeTotal time.Duration
		for _, slot := range slots {
			freeTotal += slot.End.Sub(slot.Start)
		}
		busy := mergedBusyWithin(windowStart, windowEnd, blocking)
		assert.Equal(t, windowEnd.Sub(windowStart), freeTotal+busy)
	}
}

// mergedBusyWithin tổng thời lượng bị chặn sau khi gộp chồng chéo, cắt theo khung
func mergedBusyWithin(windowStart, windowEnd time.Time, blocking []IntervalRecord) time.Duration {
	var total time.Duration
	step := time.Minute
	for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(step) {
		for _, b := range blocking {
			if overlaps(cur, cur.Add(step), b.Start, b.End) {
				total += step
				break
			}
		}
	}
	return total
}
