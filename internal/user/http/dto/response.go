package dto

import (
	"time"

	"github.com/addislabs/placement/internal/user/domain"
)

// UserResponse represents an account in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		PhoneNumber:   user.PhoneNumber,
		Role:          string(user.Role),
		Status:        string(user.Status),
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// ListUsersResponse represents a paginated list of accounts in API responses.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts a slice of domain users to a list response.
func MapUsersToListResponse(users []*domain.User) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}

	return ListUsersResponse{
		Data: data,
	}
}
