package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nisha-chat/nisha/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("s3cret-pass")
	assert.NoError(t, err, "expected no error hashing password")
	assert.NotEqual(t, "s3cret-pass", hash, "expected hash to differ from plaintext")

	assert.True(t, verifyPassword(hash, "s3cret-pass"), "expected correct password to verify")
	assert.False(t, verifyPassword(hash, "wrong-pass"), "expected wrong password to fail verification")
}

func TestJwtRoundTrip(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	token, err := app.createJwtForSession(42, time.Minute)
	assert.NoError(t, err, "expected no error creating token")

	userId, err := app.extractUserIdFromToken(token)
	assert.NoError(t, err, "expected no error extracting user id")
	assert.Equal(t, 42, userId, "expected user id to round trip")
}

func TestExtractUserIdFromToken_expired(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	token, err := app.createJwtForSession(42, -time.Minute)
	assert.NoError(t, err, "expected no error creating token")

	_, err = app.extractUserIdFromToken(token)
	assert.Error(t, err, "expected expired token to be rejected")
}

func TestSessionUserId(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	token, err := app.createJwtForSession(7, time.Minute)
	assert.NoError(t, err, "expected no error creating token")

	tcases := []struct {
		name       string
		cookie     *http.Cookie
		expectedOk bool
		expectedId int
	}{
		{
			name:       "valid session cookie",
			cookie:     createJwtCookie(token, time.Minute),
			expectedOk: true,
			expectedId: 7,
		},
		{
			name:       "no cookie",
			cookie:     nil,
			expectedOk: false,
		},
		{
			name:       "garbage token",
			cookie:     createJwtCookie("not-a-token", time.Minute),
			expectedOk: false,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/chat/whatsapp/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}

			userId, ok := app.sessionUserId(req)
			assert.Equal(t, tc.expectedOk, ok, "expected session detection to match")
			if tc.expectedOk {
				assert.Equal(t, tc.expectedId, userId, "expected user id to match")
			}
		})
	}
}

func TestBeginAndEndSession(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	rr := httptest.NewRecorder()
	assert.NoError(t, app.beginSession(rr, 7), "expected no error beginning session")

	cookie := findCookie(rr, tokenCookieKey)
	if assert.NotNil(t, cookie, "expected session cookie to be set") {
		assert.NotEmpty(t, cookie.Value, "expected cookie to carry a token")
		assert.True(t, cookie.HttpOnly, "expected cookie to be http-only")

		userId, err := app.extractUserIdFromToken(cookie.Value)
		assert.NoError(t, err, "expected cookie token to be valid")
		assert.Equal(t, 7, userId, "expected user id to match")
	}

	rr = httptest.NewRecorder()
	app.endSession(rr)

	cookie = findCookie(rr, tokenCookieKey)
	if assert.NotNil(t, cookie, "expected expired cookie to be set") {
		assert.Empty(t, cookie.Value, "expected cookie value to be cleared")
		assert.True(t, cookie.Expires.Before(time.Now()), "expected cookie to be expired")
	}
}
