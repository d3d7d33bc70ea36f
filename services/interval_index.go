package services

import (
	"sort"
	"time"
)

// Loại tài nguyên dùng làm khóa trong IntervalIndex
const (
	ResourceRoom  = "room"
	ResourceAsset = "asset"
)

// ResourceKey khóa tài nguyên có kiểu: phòng họp và tài sản dùng chung
// một cấu trúc kiểm tra xung đột, không phải hai thuật toán riêng.
type ResourceKey struct {
	Kind string
	ID   uint
}

// IntervalRecord một khoảng thời gian nửa mở [Start, End) đang chiếm tài nguyên
type IntervalRecord struct {
	ID    uint
	Code  string
	Start time.Time
	End   time.Time
}

// Interval khoảng thời gian nửa mở trả về cho người gọi
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IntervalIndex lưu các khoảng thời gian đang chiếm theo từng tài nguyên
// và trả lời truy vấn chồng chéo. Không có side effect: index chỉ biết
// những bản ghi mà người gọi nạp vào (người gọi chịu trách nhiệm chỉ nạp
// các bản ghi ở trạng thái chặn lịch).
type IntervalIndex struct {
	records map[ResourceKey][]IntervalRecord
}

// NewIntervalIndex tạo index rỗng
func NewIntervalIndex() *IntervalIndex {
	return &IntervalIndex{records: make(map[ResourceKey][]IntervalRecord)}
}

// Add nạp một bản ghi vào index
func (idx *IntervalIndex) Add(key ResourceKey, rec IntervalRecord) {
	idx.records[key] = append(idx.records[key], rec)
}

// overlaps hai khoảng nửa mở chồng chéo khi a.start < b.end && b.start < a.end
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Conflicts trả về các bản ghi chồng chéo với [start, end) trên một tài nguyên.
// excludeID cho phép một bản ghi tự kiểm tra lại chính nó sau khi sửa.
func (idx *IntervalIndex) Conflicts(key ResourceKey, start, end time.Time, excludeID uint) []IntervalRecord {
	var conflicts []IntervalRecord
	for _, rec := range idx.records[key] {
		if excludeID != 0 && rec.ID == excludeID {
			continue
		}
		if overlaps(start, end, rec.Start, rec.End) {
			conflicts = append(conflicts, rec)
		}
	}
	return conflicts
}

// Overlaps có bản ghi nào chồng chéo với [start, end) không
func (idx *IntervalIndex) Overlaps(key ResourceKey, start, end time.Time, excludeID uint) bool {
	return len(idx.Conflicts(key, start, end, excludeID)) > 0
}

// FreeSlots quét khoảng trống trong một khung giờ làm việc: sắp các khoảng
// chặn theo thời gian bắt đầu, đẩy con trỏ từ đầu khung, phát ra từng khoảng
// trống đủ dài trước mỗi khoảng chặn, cuối cùng là khoảng đuôi tới cuối khung.
func FreeSlots(windowStart, windowEnd time.Time, blocking []IntervalRecord, minDuration time.Duration) []Interval {
	sorted := make([]IntervalRecord, len(blocking))
	copy(sorted, blocking)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var slots []Interval
	cursor := windowStart
	for _, rec := range sorted {
		if !overlaps(windowStart, windowEnd, rec.Start, rec.End) {
			continue
		}
		if rec.Start.After(cursor) {
			if rec.Start.Sub(cursor) >= minDuration {
				slots = append(slots, Interval{Start: cursor, End: rec.Start})
			}
			cursor = rec.End
		} else if rec.End.After(cursor) {
			cursor = rec.End
		}
	}
	if cursor.Before(windowEnd) && windowEnd.Sub(cursor) >= minDuration {
		slots = append(slots, Interval{Start: cursor, End: windowEnd})
	}
	return slots
}
