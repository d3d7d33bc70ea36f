package services

import (
	apperrors "dnu_asset/errors"
	"dnu_asset/models"

	"gorm.io/gorm"
)

// Identity danh tính một người dùng đã được phân giải qua directory
type Identity struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ManagerID *uint  `json:"managerId"`
}

// DirectoryLookup cổng tra cứu danh bạ nhân sự, chỉ đọc.
// Mọi tham chiếu người dùng trong engine đi qua đây một lần thay vì
// mang theo cặp trường HR/nhân sự song song.
type DirectoryLookup interface {
	ResolveIdentity(personID uint) (*Identity, error)
}

// GormDirectory implement DirectoryLookup trên bảng users
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory tạo instance mới của GormDirectory
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) ResolveIdentity(personID uint) (*Identity, error) {
	var user models.User
	if err := d.db.First(&user, personID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &Identity{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ManagerID: user.ManagerID,
	}, nil
}
