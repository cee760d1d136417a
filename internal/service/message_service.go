package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zetedec/lanchat/internal/domain"
	"github.com/zetedec/lanchat/internal/repository"
)

// Notifier broadcasts canonical events to connected clients. It is only
// invoked after a mutation has been persisted.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyEditedMessage(msg *domain.Message)
	NotifyDeletedMessage(messageID int64)
}

// MessageService is the sole mutator of message rows. Each operation re-reads
// from the store rather than caching, so authorization always runs against
// current state.
type MessageService struct {
	messageRepo repository.MessageRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendMessageInput struct {
	Content    string  `json:"content"`
	GroupID    *int64  `json:"group_id,omitempty"`
	ReceiverID *int64  `json:"receiver_id,omitempty"`
	ReplyTo    *int64  `json:"reply_to,omitempty"`
	Mentions   *string `json:"mentions,omitempty"`
}

type EditMessageInput struct {
	Content string `json:"content"`
}

func (s *MessageService) Send(ctx context.Context, authorID int64, input SendMessageInput) (*domain.Message, error) {
	content := domain.ParseContent(input.Content)
	if content.IsEmpty() {
		return nil, validationf("message content is required")
	}

	audience, err := domain.ResolveAudience(authorID, input.GroupID, input.ReceiverID)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	if err := s.checkAudienceTargets(ctx, audience); err != nil {
		return nil, err
	}

	if input.ReplyTo != nil {
		parent, err := s.messageRepo.GetByID(ctx, *input.ReplyTo)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &NotFoundError{Resource: "message", ID: *input.ReplyTo}
		}
	}

	msg := &domain.Message{
		AuthorID:   authorID,
		GroupID:    input.GroupID,
		ReceiverID: input.ReceiverID,
		Content:    content,
		CreatedAt:  time.Now(),
		ReplyTo:    input.ReplyTo,
		Mentions:   input.Mentions,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	// Re-read with the author username joined in
	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(full)
	}

	return full, nil
}

func (s *MessageService) Edit(ctx context.Context, actorID int64, actorRole string, messageID int64, input EditMessageInput) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, &NotFoundError{Resource: "message", ID: messageID}
	}
	if msg.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return nil, &AuthorizationError{Reason: "only the author or an admin can edit this message"}
	}

	content := domain.ParseContent(input.Content)
	if content.IsEmpty() {
		return nil, validationf("message content is required")
	}

	// Content and edit metadata only; audience columns never change.
	now := time.Now()
	msg.Content = content
	msg.UpdatedAt = &now
	msg.Edited = true

	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEditedMessage(updated)
	}

	return updated, nil
}

func (s *MessageService) Delete(ctx context.Context, actorID int64, actorRole string, messageID int64) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return &NotFoundError{Resource: "message", ID: messageID}
	}
	if msg.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return &AuthorizationError{Reason: "only the author or an admin can delete this message"}
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyDeletedMessage(messageID)
	}

	return nil
}

func (s *MessageService) checkAudienceTargets(ctx context.Context, audience domain.Audience) error {
	switch audience.Kind {
	case domain.AudienceGroup:
		group, err := s.groupRepo.GetByID(ctx, audience.GroupID)
		if err != nil {
			return err
		}
		if group == nil {
			return &NotFoundError{Resource: "group", ID: audience.GroupID}
		}
	case domain.AudiencePrivate:
		receiver, err := s.userRepo.GetByID(ctx, audience.UserB)
		if err != nil {
			return err
		}
		if receiver == nil {
			return &NotFoundError{Resource: "user", ID: audience.UserB}
		}
	}
	return nil
}
