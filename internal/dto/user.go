package dto

import "github.com/workdesk/work-control-api/internal/models"

// RegisterUserRequest payload for creating an account together with its
// allowed divisions. Both writes happen in one transaction.
type RegisterUserRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	FullName    string          `json:"fullName" validate:"required"`
	Role        models.UserRole `json:"role" validate:"required"`
	DivisionIDs []int           `json:"divisionIds"`
}

// SaveAllowedDivisionsRequest replaces a user's allowed division set.
type SaveAllowedDivisionsRequest struct {
	DivisionIDs []int `json:"divisionIds" validate:"required"`
}
