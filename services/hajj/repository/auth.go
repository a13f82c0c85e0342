package repository

import (
	"context"
	"fmt"

	"hajjapply/domain"
	"hajjapply/middleware"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type authRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(database *pgxpool.Pool) domain.AuthRepo {
	return &authRepository{
		db: database,
	}
}

func (ar *authRepository) Login(ctx context.Context, data *domain.LoginRequest) (*domain.LoginResponse, error) {
	query := `
		SELECT id, username, password, role
		FROM users
		WHERE username = $1;
	`

	var user domain.User
	err := ar.db.QueryRow(ctx, query, data.Username).Scan(&user.ID, &user.Username, &user.Password, &user.Role)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password))
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token, err : %v", err)
	}

	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}
