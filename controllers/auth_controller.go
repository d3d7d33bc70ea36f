package controllers

import (
	"dnu_asset/constants"
	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"
	"dnu_asset/services"

	"github.com/gin-gonic/gin"
)

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Department:  user.Department,
		Role:        user.Role,
	}
}

// Register đăng ký tài khoản nhân viên
func Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	user, err := services.CreateUser(models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Role:        constants.RoleEmployee,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, toUserResponse(user))
}

// Login đăng nhập, trả về access token và refresh token
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	user, err := services.Authenticate(req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	userInfo := services.UserInfo{UserId: user.ID, Role: user.Role}
	accessToken, err := services.GenerateToken(userInfo, 60, true)
	if err != nil {
		response.ServerError(c)
		return
	}
	refreshToken, err := services.GenerateToken(userInfo, 7*24*60, false)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	})
}
