package domain

import "time"

type UserRole string

const (
	RoleVesselOwner UserRole = "vessel_owner"
	RoleClubOwner   UserRole = "club_owner"
	RoleAdmin       UserRole = "admin"
)

type OwnerStatus string

const (
	OwnerPending  OwnerStatus = "pending"
	OwnerVerified OwnerStatus = "verified"
	OwnerRejected OwnerStatus = "rejected"
	OwnerBlocked  OwnerStatus = "blocked"
)

type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email" validate:"required,email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone,omitempty"`
	OwnerStatus  OwnerStatus `json:"owner_status,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
