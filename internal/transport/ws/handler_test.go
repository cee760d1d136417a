package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

func signToken(t *testing.T, secret string, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestServeWSMarksUserSeen(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	seen := make(chan int64, 1)
	srv := httptest.NewServer(ServeWS(hub, "test-secret", func(userID int64) {
		seen <- userID
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=" + signToken(t, "test-secret", 7)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	select {
	case userID := <-seen:
		assert.Equal(t, int64(7), userID)
	case <-time.After(time.Second):
		t.Fatal("connect callback never ran")
	}
}

func TestServeWSRejectsBadToken(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(ServeWS(hub, "test-secret", nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?token=not-a-jwt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
