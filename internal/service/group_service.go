package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zetedec/lanchat/internal/domain"
	"github.com/zetedec/lanchat/internal/repository"
)

type GroupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

type CreateGroupInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Create creates a group; the creator becomes its owning admin.
func (s *GroupService) Create(ctx context.Context, creatorID int64, input CreateGroupInput) (*domain.Group, error) {
	group := &domain.Group{
		Name:        input.Name,
		Description: input.Description,
		AdminID:     creatorID,
		CreatedAt:   time.Now(),
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	return group, nil
}

func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return groups, nil
}
