package usecase

import (
	"context"
	"time"

	"hajjapply/domain"
)

type userUC struct {
	userRepo domain.UserRepo
	TimeOut  time.Duration
}

func NewUserUseCase(repo domain.UserRepo, timeOut time.Duration) domain.UserUseCase {
	return &userUC{
		userRepo: repo,
		TimeOut:  timeOut,
	}
}

func (uUC *userUC) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uUC.TimeOut)
	defer cancel()

	user, err := uUC.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uUC *userUC) CreateStaff(ctx context.Context, payload *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uUC.TimeOut)
	defer cancel()

	user, err := uUC.userRepo.CreateStaff(ctx, payload)
	if err != nil {
		return nil, err
	}
	return user, nil
}
