package repository

import (
	"context"
	"errors"
	"fmt"

	"hajjapply/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(database *pgxpool.Pool) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

func (ur *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password, role
		FROM users
		WHERE username = $1;
	`

	var user domain.User
	err := ur.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.Password, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("could not find user: %s", username)
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}

	return &user, nil
}

func (ur *userRepository) CreateStaff(ctx context.Context, payload *domain.User) (*domain.User, error) {
	checkQuery := `
		SELECT id
		FROM users
		WHERE username = $1;
	`

	var existingID int
	err := ur.db.QueryRow(ctx, checkQuery, payload.Username).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("username already taken: %s", payload.Username)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("could not check username: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %v", err)
	}

	if payload.Role == "" {
		payload.Role = "staff"
	}

	insertQuery := `
		INSERT INTO users (username, password, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, role;
	`

	var user domain.User
	err = ur.db.QueryRow(ctx, insertQuery, payload.Username, string(hashed), payload.Role).Scan(&user.ID, &user.Username, &user.Role)
	if err != nil {
		return nil, fmt.Errorf("could not create staff: %v", err)
	}

	return &user, nil
}
