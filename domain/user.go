package domain

import "context"

// User is one row of the credentials store consumed by the login gate.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" valid:"required~Username is required"`
	Password string `json:"password" valid:"required~Password is required"`
	Role     string `json:"role"`
}

type UserRepo interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	CreateStaff(ctx context.Context, payload *User) (*User, error)
}

type UserUseCase interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	CreateStaff(ctx context.Context, payload *User) (*User, error)
}
