package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestResolveAudience(t *testing.T) {
	t.Run("neither field set resolves to general", func(t *testing.T) {
		a, err := ResolveAudience(1, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, AudienceGeneral, a.Kind)
	})

	t.Run("group id resolves to group", func(t *testing.T) {
		a, err := ResolveAudience(1, int64Ptr(7), nil)
		require.NoError(t, err)
		assert.Equal(t, AudienceGroup, a.Kind)
		assert.Equal(t, int64(7), a.GroupID)
	})

	t.Run("receiver id resolves to private pair", func(t *testing.T) {
		a, err := ResolveAudience(1, nil, int64Ptr(2))
		require.NoError(t, err)
		assert.Equal(t, AudiencePrivate, a.Kind)
		assert.Equal(t, int64(1), a.UserA)
		assert.Equal(t, int64(2), a.UserB)
	})

	t.Run("both set is rejected", func(t *testing.T) {
		_, err := ResolveAudience(1, int64Ptr(7), int64Ptr(2))
		assert.ErrorIs(t, err, ErrAmbiguousAudience)
	})

	t.Run("messaging yourself is rejected", func(t *testing.T) {
		_, err := ResolveAudience(1, nil, int64Ptr(1))
		assert.ErrorIs(t, err, ErrSelfAudience)
	})
}

func TestAudienceVisibleTo(t *testing.T) {
	assert.True(t, GeneralAudience().VisibleTo(1))
	assert.True(t, GeneralAudience().VisibleTo(99))

	assert.True(t, GroupAudience(5).VisibleTo(1), "group messages are readable by anyone")
	assert.True(t, GroupAudience(5).VisibleTo(42))

	private := PrivateAudience(1, 2)
	assert.True(t, private.VisibleTo(1))
	assert.True(t, private.VisibleTo(2))
	assert.False(t, private.VisibleTo(3))
}

func TestAudienceEqual(t *testing.T) {
	assert.True(t, PrivateAudience(1, 2).Equal(PrivateAudience(2, 1)), "private pairs match in either direction")
	assert.False(t, PrivateAudience(1, 2).Equal(PrivateAudience(1, 3)))
	assert.True(t, GroupAudience(4).Equal(GroupAudience(4)))
	assert.False(t, GroupAudience(4).Equal(GroupAudience(5)))
	assert.False(t, GeneralAudience().Equal(GroupAudience(4)))
}

func TestMessageFilterMatches(t *testing.T) {
	msg := &Message{
		ID:       1,
		AuthorID: 1,
		Content:  TextContent("Hello World"),
	}

	assert.True(t, MessageFilter{Audience: GeneralAudience()}.Matches(msg))
	assert.False(t, MessageFilter{Audience: GroupAudience(3)}.Matches(msg))

	assert.True(t, MessageFilter{Audience: GeneralAudience(), Query: "hello"}.Matches(msg),
		"substring match is case-insensitive")
	assert.True(t, MessageFilter{Audience: GeneralAudience(), Query: "o W"}.Matches(msg))
	assert.False(t, MessageFilter{Audience: GeneralAudience(), Query: "goodbye"}.Matches(msg))

	fileMsg := &Message{ID: 2, AuthorID: 1, Content: FileContent("/uploads/report.pdf")}
	assert.True(t, MessageFilter{Audience: GeneralAudience(), Query: "report"}.Matches(fileMsg),
		"query runs over the encoded content")

	// queries are literal substrings; % and _ carry no wildcard meaning
	pctMsg := &Message{ID: 3, AuthorID: 1, Content: TextContent("growth was 100%")}
	pctWords := &Message{ID: 4, AuthorID: 1, Content: TextContent("growth was 100 pct")}
	assert.True(t, MessageFilter{Audience: GeneralAudience(), Query: "100%"}.Matches(pctMsg))
	assert.False(t, MessageFilter{Audience: GeneralAudience(), Query: "100%"}.Matches(pctWords))
	assert.False(t, MessageFilter{Audience: GeneralAudience(), Query: "w_s"}.Matches(pctMsg))
}

// The query-path filter and the fan-out visibility predicate must agree: a
// viewer can find a message through some view of their own exactly when live
// delivery would show it to them.
func TestFilterAndVisibilityAgree(t *testing.T) {
	now := time.Now()
	messages := []*Message{
		{ID: 1, AuthorID: 1, CreatedAt: now, Content: TextContent("general")},
		{ID: 2, AuthorID: 2, GroupID: int64Ptr(10), CreatedAt: now, Content: TextContent("group ten")},
		{ID: 3, AuthorID: 1, ReceiverID: int64Ptr(2), CreatedAt: now, Content: TextContent("one to two")},
		{ID: 4, AuthorID: 3, ReceiverID: int64Ptr(1), CreatedAt: now, Content: TextContent("three to one")},
	}
	viewers := []int64{1, 2, 3, 4}
	groups := []int64{10}

	for _, m := range messages {
		for _, v := range viewers {
			// every selector the viewer can legitimately construct
			var selectors []Audience
			selectors = append(selectors, GeneralAudience())
			for _, g := range groups {
				selectors = append(selectors, GroupAudience(g))
			}
			for _, peer := range viewers {
				if peer != v {
					selectors = append(selectors, PrivateAudience(v, peer))
				}
			}

			foundViaQuery := false
			for _, sel := range selectors {
				if (MessageFilter{Audience: sel}).Matches(m) {
					foundViaQuery = true
					break
				}
			}

			assert.Equal(t, m.Audience().VisibleTo(v), foundViaQuery,
				"message %d, viewer %d", m.ID, v)
		}
	}
}
