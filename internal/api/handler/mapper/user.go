package mapper

import (
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
)

type UserMapper struct{}

func (UserMapper) DtoToUpdate(req request.UpdateUser, user *models.User) {
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Actif != nil {
		user.Actif = *req.Actif
	}
}

func (UserMapper) EntityToUserResponse(user models.User) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:       user.ID,
		TeamID:   user.TeamID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		Actif:    user.Actif,
	}
}
