package domain

import "time"

type UserRole string

const (
	RoleClient UserRole = "cliente"
	RoleOwner  UserRole = "propietario"
	RoleAdmin  UserRole = "administrador"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
