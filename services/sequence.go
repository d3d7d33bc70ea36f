package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewCode sinh mã chứng từ duy nhất, ví dụ BK-1A2B3C4D
func NewCode(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}
