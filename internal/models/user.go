package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	ProfilePhoto string     `json:"profile_photo"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleFreelancer UserRole = "freelancer"
	RoleStartup    UserRole = "startup"
	RoleInvestor   UserRole = "investor"
	RoleAdmin      UserRole = "admin"
)

func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleStudent, RoleFreelancer, RoleStartup, RoleInvestor:
		return true
	}
	return false
}
