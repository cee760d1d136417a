package domain

import (
	"errors"
	"strings"
)

// AudienceKind discriminates the three visibility scopes a message can have.
type AudienceKind string

const (
	AudienceGeneral AudienceKind = "general"
	AudienceGroup   AudienceKind = "group"
	AudiencePrivate AudienceKind = "private"
)

var (
	ErrAmbiguousAudience = errors.New("group_id and receiver_id are mutually exclusive")
	ErrSelfAudience      = errors.New("cannot address a private message to yourself")
)

// Audience is the tagged union General | Group(id) | Private(a, b). It is
// resolved once when a message is created and drives both the persisted-query
// filter and the live-delivery filter, so the two can never disagree.
type Audience struct {
	Kind    AudienceKind `json:"kind"`
	GroupID int64        `json:"group_id,omitempty"`
	UserA   int64        `json:"-"`
	UserB   int64        `json:"-"`
}

func GeneralAudience() Audience {
	return Audience{Kind: AudienceGeneral}
}

func GroupAudience(groupID int64) Audience {
	return Audience{Kind: AudienceGroup, GroupID: groupID}
}

func PrivateAudience(userA, userB int64) Audience {
	return Audience{Kind: AudiencePrivate, UserA: userA, UserB: userB}
}

// ResolveAudience validates a message's addressing fields and builds the
// audience. Setting both group_id and receiver_id is rejected rather than
// letting one silently win.
func ResolveAudience(authorID int64, groupID, receiverID *int64) (Audience, error) {
	switch {
	case groupID != nil && receiverID != nil:
		return Audience{}, ErrAmbiguousAudience
	case groupID != nil:
		return GroupAudience(*groupID), nil
	case receiverID != nil:
		if *receiverID == authorID {
			return Audience{}, ErrSelfAudience
		}
		return PrivateAudience(authorID, *receiverID), nil
	default:
		return GeneralAudience(), nil
	}
}

// VisibleTo reports whether a viewer is entitled to see messages in this
// audience. Group messages are readable by any authenticated user; there is
// no membership concept.
func (a Audience) VisibleTo(viewerID int64) bool {
	switch a.Kind {
	case AudiencePrivate:
		return viewerID == a.UserA || viewerID == a.UserB
	default:
		return true
	}
}

// Equal compares audiences; private pairs match in either direction.
func (a Audience) Equal(b Audience) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AudienceGroup:
		return a.GroupID == b.GroupID
	case AudiencePrivate:
		return (a.UserA == b.UserA && a.UserB == b.UserB) ||
			(a.UserA == b.UserB && a.UserB == b.UserA)
	default:
		return true
	}
}

// MessageFilter selects messages for the list/search path: an exact audience
// match plus an optional case-insensitive substring over the encoded content.
// The postgres store translates this into its WHERE clause; Matches is the
// reference semantics and what in-memory stores use.
type MessageFilter struct {
	Audience Audience
	Query    string
}

func (f MessageFilter) Matches(m *Message) bool {
	if !f.Audience.Equal(m.Audience()) {
		return false
	}
	if f.Query == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(m.Content.Encode()),
		strings.ToLower(f.Query),
	)
}
