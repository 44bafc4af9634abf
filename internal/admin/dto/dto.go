package dto

import "github.com/fekuna/storefront-service/internal/model"

type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminView is the public projection of an administrator.
type AdminView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewAdminView(a *model.Admin) AdminView {
	return AdminView{ID: a.ID, Email: a.Email, Name: a.Name}
}

type LoginResult struct {
	Token string    `json:"token"`
	Admin AdminView `json:"admin"`
}
