package domain

import "time"

// UserRole роль сотрудника в админке
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
)

// User сотрудник компании с доступом к админке
type User struct {
	ID           int64
	CompanyID    int64
	Email        string
	PasswordHash string
	Name         string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
