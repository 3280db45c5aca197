package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nisha-chat/nisha/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	handler := app.errorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something broke")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/chat/messages/", nil))

	assert.Equal(t, http.StatusOK, rr.Code, "expected status code to be 200")
	assert.Equal(t, "close", rr.Header().Get("Connection"), "expected connection close header")

	var res result
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res), "expected valid json response")
	assert.False(t, res.Success, "expected success to be false")
	assert.Equal(t, "something broke", res.Error, "expected panic message in error field")
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	token, err := app.createJwtForSession(7, time.Minute)
	assert.NoError(t, err, "expected no error creating token")

	tcases := []struct {
		name       string
		cookie     *http.Cookie
		expectNext bool
	}{
		{
			name:       "valid session cookie reaches the handler",
			cookie:     createJwtCookie(token, time.Minute),
			expectNext: true,
		},
		{
			name:       "missing cookie is rejected",
			cookie:     nil,
			expectNext: false,
		},
		{
			name:       "invalid cookie is rejected",
			cookie:     createJwtCookie("not-a-token", time.Minute),
			expectNext: false,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
				called = true
				userId, ok := UserId(r.Context())
				assert.True(t, ok, "expected user id in context")
				assert.Equal(t, 7, userId, "expected user id to match session")
			})

			req := httptest.NewRequest(http.MethodPost, "/chat/send/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tc.expectNext, called, "expected handler invocation to match")
			assert.Equal(t, http.StatusOK, rr.Code, "expected status code to be 200")

			if !tc.expectNext {
				var res result
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res), "expected valid json response")
				assert.False(t, res.Success, "expected success to be false")
				assert.Equal(t, "Authentication required", res.Error, "expected auth error message")
			}
		})
	}
}

func TestWithUser(t *testing.T) {
	app := newTestApp(t, &database.MockNishaRepository{}, nil)

	token, err := app.createJwtForSession(7, time.Minute)
	assert.NoError(t, err, "expected no error creating token")

	t.Run("authenticated caller gets an id", func(t *testing.T) {
		handler := app.withUser(func(w http.ResponseWriter, r *http.Request) {
			userId, ok := UserId(r.Context())
			assert.True(t, ok, "expected user id in context")
			assert.Equal(t, 7, userId, "expected user id to match session")
		})

		req := httptest.NewRequest(http.MethodGet, "/chat/users/", nil)
		req.AddCookie(createJwtCookie(token, time.Minute))
		handler(httptest.NewRecorder(), req)
	})

	t.Run("anonymous caller continues without an id", func(t *testing.T) {
		var called bool
		handler := app.withUser(func(w http.ResponseWriter, r *http.Request) {
			called = true
			_, ok := UserId(r.Context())
			assert.False(t, ok, "expected no user id in context")
		})

		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/chat/users/", nil))
		assert.True(t, called, "expected handler to run anonymously")
	})
}
