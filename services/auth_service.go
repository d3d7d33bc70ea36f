package services

import (
	"errors"
	"time"

	"dnu_asset/config"
	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

var secretKey = []byte(config.GetEnv("SECRET_KEY_ACCESS_TOKEN"))
var refreshSecretKey = []byte(config.GetEnv("SECRET_KEY_REFRESH_TOKEN"))

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func GenerateToken(userInfo UserInfo, expiryMinutes int, isAccessToken bool) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	var secretKeyToUse []byte
	if isAccessToken {
		secretKeyToUse = secretKey
	} else {
		secretKeyToUse = refreshSecretKey
	}

	return token.SignedString(secretKeyToUse)
}

// GetUserByEmail tìm user theo email
func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, apperrors.ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

// CreateUser tạo tài khoản mới, mật khẩu được băm trước khi lưu
func CreateUser(input models.User) (models.User, error) {
	var existing models.User
	err := config.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return input, apperrors.NewAppError(apperrors.ErrCodeValidation, "Email đã được sử dụng", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return input, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return input, err
	}
	input.Password = hashed
	input.Status = constants.UserStatusActive

	if err := config.DB.Create(&input).Error; err != nil {
		return input, err
	}
	return input, nil
}

// Authenticate kiểm tra email/mật khẩu, trả về user khi hợp lệ
func Authenticate(email, password string) (models.User, error) {
	user, err := GetUserByEmail(email)
	if err != nil {
		return user, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Email hoặc mật khẩu không đúng", err)
	}
	if user.Status != constants.UserStatusActive {
		return user, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Tài khoản đã bị khóa", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return user, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Email hoặc mật khẩu không đúng", err)
	}
	return user, nil
}

// NewPass đổi mật khẩu cho user
func NewPass(user models.User, newPassword string) error {
	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return config.DB.Model(&user).Update("password", hashed).Error
}
