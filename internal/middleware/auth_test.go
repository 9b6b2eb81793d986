package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/showtrack/showtrack-go/internal/model"
)

type tokenTable map[string]*model.User

func (t tokenTable) Authenticate(_ context.Context, token string) (*model.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, errors.New("forbidden")
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(user.ID))
	})
}

func TestTokenAuth(t *testing.T) {
	users := tokenTable{"good-token": {ID: "u1", Name: "Mara"}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{name: "valid token", header: "good-token", wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing header", header: "", wantStatus: http.StatusForbidden},
		{name: "unknown token", header: "bad-token", wantStatus: http.StatusForbidden},
		{name: "bearer prefix is not stripped", header: "Bearer good-token", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			h := TokenAuth(users)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("next called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantStatus == http.StatusForbidden {
				var body model.AuthFailureResponse
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if body.Authorized {
					t.Error("expected authorized:false")
				}
			}
		})
	}
}

func TestRequireSelf(t *testing.T) {
	users := tokenTable{"good-token": {ID: "u1"}}

	r := chi.NewRouter()
	r.With(TokenAuth(users), RequireSelf("userId")).Get("/users/{userId}/watchlist",
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/users/u1/watchlist", http.StatusOK},
		{"/users/u2/watchlist", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set("Authorization", "good-token")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.wantStatus)
		}
	}
}

func TestUserFromContextEmpty(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Error("expected no user in empty context")
	}
	if _, ok := UserFromContext(WithUser(context.Background(), nil)); ok {
		t.Error("expected nil user to be reported as absent")
	}
}
