package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescheduleCacheRooms(t *testing.T) {
	// Dời sang phòng khác phải xóa cache khung giờ trống của cả hai phòng
	assert.Equal(t, []uint{3, 5}, rescheduleCacheRooms(3, 5))

	// Giữ nguyên phòng thì chỉ xóa một lần
	assert.Equal(t, []uint{3}, rescheduleCacheRooms(3, 3))
}
