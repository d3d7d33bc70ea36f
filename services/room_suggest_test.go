package services

import (
	"testing"

	"dnu_asset/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInput(t *testing.T) {
	assert.Equal(t, "phong hop a201", normalizeInput("  Phòng họp A201 "))
	assert.Equal(t, "may chieu", normalizeInput("MÁY CHIẾU"))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, calculateSimilarity("phong hop", "phong hop"), 0.001)
	assert.InDelta(t, 1.0, calculateSimilarity("", ""), 0.001)

	sim := calculateSimilarity("phong hop a201", "phong hop a202")
	assert.Greater(t, sim, 0.9)

	sim = calculateSimilarity("phong hop", "kho thiet bi")
	assert.Less(t, sim, 0.5)
}

func TestParseFacilityHints(t *testing.T) {
	hints := parseFacilityHints("phòng có máy chiếu và bảng trắng")
	assert.True(t, hints["projector"])
	assert.True(t, hints["whiteboard"])
	assert.False(t, hints["video"])

	hints = parseFacilityHints("họp trực tuyến với đối tác")
	assert.True(t, hints["video"])

	hints = parseFacilityHints("phòng bất kỳ")
	assert.Empty(t, hints)
}

func TestFacilityScore(t *testing.T) {
	room := &models.Room{HasProjector: true, HasWhiteboard: false}
	hints := map[string]bool{"projector": true, "whiteboard": true}
	assert.InDelta(t, 0.5, facilityScore(room, hints), 0.001)

	// Không nhắc tiện nghi nào thì mọi phòng đạt điểm tối đa
	assert.InDelta(t, 1.0, facilityScore(room, map[string]bool{}), 0.001)

	room.HasWhiteboard = true
	assert.InDelta(t, 1.0, facilityScore(room, hints), 0.001)
}

func TestScoreRoomPrefersSameBuildingAndSnugCapacity(t *testing.T) {
	svc := &RoomSuggestService{}
	original := &models.Room{Building: "A", Floor: "2"}
	hints := map[string]bool{}

	sameBuilding := &models.Room{Building: "A", Floor: "2", Capacity: 10}
	otherBuilding := &models.Room{Building: "B", Floor: "1", Capacity: 10}
	assert.Greater(t,
		svc.scoreRoom(sameBuilding, original, "", hints, 8),
		svc.scoreRoom(otherBuilding, original, "", hints, 8))

	// Cùng toà, phòng vừa đủ thắng phòng quá rộng
	snug := &models.Room{Building: "A", Floor: "2", Capacity: 10}
	huge := &models.Room{Building: "A", Floor: "2", Capacity: 100}
	assert.Greater(t,
		svc.scoreRoom(snug, original, "", hints, 8),
		svc.scoreRoom(huge, original, "", hints, 8))
}
