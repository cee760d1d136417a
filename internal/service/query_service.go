package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/zetedec/lanchat/internal/domain"
	"github.com/zetedec/lanchat/internal/repository"
)

// Selector picks the view a client is reading: the general channel (neither
// field set), a group, or a private thread with one peer.
type Selector struct {
	GroupID *int64
	PeerID  *int64
}

// QueryService serves the read path: audience-scoped listing, search and the
// admin backup export. It applies the same audience predicate the fan-out
// contract documents, so history and live state agree.
type QueryService struct {
	messageRepo repository.MessageRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
}

func NewQueryService(
	messageRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
) *QueryService {
	return &QueryService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
	}
}

type BackupExport struct {
	ExportedAt time.Time        `json:"exported_at"`
	Users      []domain.User    `json:"users"`
	Groups     []domain.Group   `json:"groups"`
	Messages   []domain.Message `json:"messages"`
}

func (s *QueryService) List(ctx context.Context, viewerID int64, sel Selector) ([]domain.Message, error) {
	return s.Search(ctx, viewerID, sel, "")
}

func (s *QueryService) Search(ctx context.Context, viewerID int64, sel Selector, query string) ([]domain.Message, error) {
	audience, err := s.resolveSelector(ctx, viewerID, sel)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.List(ctx, domain.MessageFilter{Audience: audience, Query: query})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// Backup exports everything for the admin. Credential hashes are stripped
// before the export leaves the service.
func (s *QueryService) Backup(ctx context.Context, actorRole string) (*BackupExport, error) {
	if actorRole != domain.RoleAdmin {
		return nil, &AuthorizationError{Reason: "backup requires the admin role"}
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &BackupExport{
		ExportedAt: time.Now(),
		Users: lo.Map(users, func(u domain.User, _ int) domain.User {
			u.PasswordHash = ""
			return u
		}),
		Groups:   groups,
		Messages: messages,
	}, nil
}

// resolveSelector builds the audience for a view. Private selectors are
// always anchored at the viewer, so a client cannot read someone else's
// thread by naming an arbitrary pair.
func (s *QueryService) resolveSelector(ctx context.Context, viewerID int64, sel Selector) (domain.Audience, error) {
	audience, err := domain.ResolveAudience(viewerID, sel.GroupID, sel.PeerID)
	if err != nil {
		return domain.Audience{}, &ValidationError{Reason: err.Error()}
	}

	if audience.Kind == domain.AudienceGroup {
		group, err := s.groupRepo.GetByID(ctx, audience.GroupID)
		if err != nil {
			return domain.Audience{}, err
		}
		if group == nil {
			return domain.Audience{}, &NotFoundError{Resource: "group", ID: audience.GroupID}
		}
	}

	return audience, nil
}
