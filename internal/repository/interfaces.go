package repository

import (
	"context"
	"time"

	"github.com/zetedec/lanchat/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIP(ctx context.Context, ip string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id int64, profilePic, bio *string) error
	TouchLastSeen(ctx context.Context, id int64, seenAt time.Time) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	// List returns matching messages in ascending id order with author
	// usernames joined in.
	List(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id int64) error
}
