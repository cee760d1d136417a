package service

import (
	"context"

	"github.com/zetedec/lanchat/internal/domain"
	"github.com/zetedec/lanchat/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	ProfilePic *string `json:"profile_pic,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (*domain.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, id, input.ProfilePic, input.Bio); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
