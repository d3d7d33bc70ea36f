package services

import (
	"sort"
	"strings"
	"time"

	"dnu_asset/constants"
	"dnu_asset/models"
	"dnu_asset/services/logger"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

// RoomSuggestion một phòng thay thế kèm điểm phù hợp
type RoomSuggestion struct {
	Room  models.Room `json:"room"`
	Score float64     `json:"score"`
}

// RoomSuggestService gợi ý phòng thay thế khi phòng mong muốn kẹt lịch
type RoomSuggestService struct {
	db           *gorm.DB
	availability *AvailabilityService
	logger       logger.Logger
}

// RoomSuggestServiceOptions tham số khởi tạo RoomSuggestService
type RoomSuggestServiceOptions struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Logger       logger.Logger
}

// NewRoomSuggestService tạo instance mới của RoomSuggestService
func NewRoomSuggestService(opts RoomSuggestServiceOptions) *RoomSuggestService {
	return &RoomSuggestService{
		db:           opts.DB,
		availability: opts.Availability,
		logger:       opts.Logger,
	}
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

// parseFacilityHints tách các tiện nghi được nhắc đến trong câu tìm kiếm
func parseFacilityHints(query string) map[string]bool {
	projectorKeywords := []string{"máy chiếu", "may chieu", "projector"}
	tvKeywords := []string{"tivi", "tv", "màn hình", "man hinh"}
	whiteboardKeywords := []string{"bảng trắng", "bang trang", "whiteboard", "bảng"}
	videoKeywords := []string{"họp trực tuyến", "hop truc tuyen", "video call", "zoom", "cầu truyền hình"}

	normalizedQuery := normalizeInput(query)
	hints := map[string]bool{}

	groups := map[string][]string{
		"projector":  projectorKeywords,
		"tv":         tvKeywords,
		"whiteboard": whiteboardKeywords,
		"video":      videoKeywords,
	}
	for name, keywords := range groups {
		normalized := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			normalized = append(normalized, normalizeInput(kw))
		}
		matcher := createMatcher(normalized)
		match := matcher.Closest(normalizedQuery)
		if match != "" && strings.Contains(normalizedQuery, match) {
			hints[name] = true
		}
	}
	return hints
}

// facilityScore phòng đáp ứng được bao nhiêu phần tiện nghi người dùng nhắc đến
func facilityScore(room *models.Room, hints map[string]bool) float64 {
	if len(hints) == 0 {
		return 1.0
	}
	satisfied := 0
	if hints["projector"] && room.HasProjector {
		satisfied++
	}
	if hints["tv"] && room.HasTV {
		satisfied++
	}
	if hints["whiteboard"] && room.HasWhiteboard {
		satisfied++
	}
	if hints["video"] && room.HasVideoConference {
		satisfied++
	}
	return float64(satisfied) / float64(len(hints))
}

// Suggest gợi ý các phòng còn trống trong khoảng mong muốn, đủ sức
// chứa, xếp theo độ phù hợp với câu tìm kiếm và vị trí phòng gốc.
func (s *RoomSuggestService) Suggest(originalRoomID uint, start, end time.Time, attendees int, query string, limit int) ([]RoomSuggestion, error) {
	if limit <= 0 {
		limit = 5
	}

	var original *models.Room
	if originalRoomID != 0 {
		var room models.Room
		if err := s.db.First(&room, originalRoomID).Error; err == nil {
			original = &room
		}
	}

	var candidates []models.Room
	dbQuery := s.db.
		Where("active = ? AND allow_booking = ? AND status = ?", true, true, constants.RoomStatusAvailable).
		Where("capacity >= ?", attendees)
	if originalRoomID != 0 {
		dbQuery = dbQuery.Where("id <> ?", originalRoomID)
	}
	if err := dbQuery.Find(&candidates).Error; err != nil {
		return nil, err
	}

	hints := parseFacilityHints(query)
	normalizedQuery := normalizeInput(query)

	var suggestions []RoomSuggestion
	for i := range candidates {
		room := candidates[i]
		free, _, err := s.availability.CheckRoom(room.ID, start, end, 0)
		if err != nil {
			s.logger.Warn("kiểm tra lịch phòng %s khi gợi ý thất bại: %v", room.Code, err)
			continue
		}
		if !free {
			continue
		}
		suggestions = append(suggestions, RoomSuggestion{
			Room:  room,
			Score: s.scoreRoom(&room, original, normalizedQuery, hints, attendees),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// scoreRoom điểm tổng hợp: tiện nghi, vị trí gần phòng gốc, độ khớp
// tên, và sức chứa không dư thừa quá nhiều
func (s *RoomSuggestService) scoreRoom(room *models.Room, original *models.Room, normalizedQuery string, hints map[string]bool, attendees int) float64 {
	score := facilityScore(room, hints) * 2.0

	if original != nil {
		if room.Building == original.Building {
			score += 1.0
			if room.Floor == original.Floor {
				score += 0.5
			}
		}
	}

	if normalizedQuery != "" {
		nameSim := calculateSimilarity(normalizedQuery, normalizeInput(room.Name))
		locSim := calculateSimilarity(normalizedQuery, normalizeInput(room.Location))
		if locSim > nameSim {
			nameSim = locSim
		}
		score += nameSim
	}

	// Phòng vừa đủ tốt hơn phòng quá rộng
	if attendees > 0 && room.Capacity > 0 {
		score += float64(attendees) / float64(room.Capacity)
	}
	return score
}
