package service

import (
	"context"
	"sort"
	"time"

	"github.com/zetedec/lanchat/internal/domain"
)

// In-memory repository fakes. The message fake filters with
// domain.MessageFilter.Matches, the same predicate the postgres store
// translates to SQL.

type memUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByIP(_ context.Context, ip string) (*domain.User, error) {
	for _, u := range r.users {
		if u.IPAddress == ip {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id int64, profilePic, bio *string) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	if profilePic != nil {
		u.ProfilePic = profilePic
	}
	if bio != nil {
		u.Bio = bio
	}
	r.users[id] = u
	return nil
}

func (r *memUserRepo) TouchLastSeen(_ context.Context, id int64, seenAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.LastSeen = &seenAt
	r.users[id] = u
	return nil
}

type memGroupRepo struct {
	groups map[int64]domain.Group
	nextID int64
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: make(map[int64]domain.Group)}
}

func (r *memGroupRepo) Create(_ context.Context, group *domain.Group) error {
	r.nextID++
	group.ID = r.nextID
	r.groups[group.ID] = *group
	return nil
}

func (r *memGroupRepo) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	if g, ok := r.groups[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r *memGroupRepo) List(_ context.Context) ([]domain.Group, error) {
	var groups []domain.Group
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

type memMessageRepo struct {
	messages map[int64]domain.Message
	users    *memUserRepo
	nextID   int64
}

func newMemMessageRepo(users *memUserRepo) *memMessageRepo {
	return &memMessageRepo{messages: make(map[int64]domain.Message), users: users}
}

func (r *memMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.nextID++
	msg.ID = r.nextID
	r.messages[msg.ID] = *msg
	return nil
}

func (r *memMessageRepo) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	r.joinUsername(&m)
	return &m, nil
}

func (r *memMessageRepo) List(_ context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if filter.Matches(&m) {
			r.joinUsername(&m)
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMessageRepo) ListAll(_ context.Context) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		r.joinUsername(&m)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMessageRepo) Update(_ context.Context, msg *domain.Message) error {
	stored, ok := r.messages[msg.ID]
	if !ok {
		return nil
	}
	// Content and edit metadata only, like the UPDATE statement
	stored.Content = msg.Content
	stored.UpdatedAt = msg.UpdatedAt
	stored.Edited = msg.Edited
	r.messages[msg.ID] = stored
	return nil
}

func (r *memMessageRepo) Delete(_ context.Context, id int64) error {
	delete(r.messages, id)
	return nil
}

func (r *memMessageRepo) joinUsername(m *domain.Message) {
	if r.users == nil {
		return
	}
	if u, ok := r.users.users[m.AuthorID]; ok {
		m.AuthorUsername = u.Username
	}
}

// recordingNotifier captures broadcasts for assertions.
type recordingNotifier struct {
	newMessages    []domain.Message
	editedMessages []domain.Message
	deletedIDs     []int64
}

func (n *recordingNotifier) NotifyNewMessage(msg *domain.Message) {
	n.newMessages = append(n.newMessages, *msg)
}

func (n *recordingNotifier) NotifyEditedMessage(msg *domain.Message) {
	n.editedMessages = append(n.editedMessages, *msg)
}

func (n *recordingNotifier) NotifyDeletedMessage(messageID int64) {
	n.deletedIDs = append(n.deletedIDs, messageID)
}
