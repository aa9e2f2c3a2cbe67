package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(ja *jwtauth.JWTAuth) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(ja))
		r.Use(AuthRequired(ja))

		r.Get("/open", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.With(StaffOnly).Get("/staff", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.With(AdminOnly).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func tokenWith(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) string {
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	_, token, err := ja.Encode(claims)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func get(router *chi.Mux, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	router := newTestRouter(ja)

	t.Run("missing token", func(t *testing.T) {
		rec := get(router, "/open", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token accepted", func(t *testing.T) {
		token := tokenWith(t, ja, map[string]interface{}{
			"user_id": "u1", "type": "access", "role": "employee",
		})
		rec := get(router, "/open", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		token := tokenWith(t, ja, map[string]interface{}{
			"user_id": "u1", "type": "refresh",
		})
		rec := get(router, "/open", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key rejected", func(t *testing.T) {
		other := jwtauth.New("HS256", []byte("other-secret"), nil)
		token := tokenWith(t, other, map[string]interface{}{
			"user_id": "u1", "type": "access",
		})
		rec := get(router, "/open", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRoleGates(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	router := newTestRouter(ja)

	claimsFor := func(role string) map[string]interface{} {
		return map[string]interface{}{"user_id": "u1", "type": "access", "role": role}
	}

	t.Run("employee blocked from staff route", func(t *testing.T) {
		rec := get(router, "/staff", tokenWith(t, ja, claimsFor("employee")))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("hr allowed on staff route", func(t *testing.T) {
		rec := get(router, "/staff", tokenWith(t, ja, claimsFor("hr")))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin allowed on staff route", func(t *testing.T) {
		rec := get(router, "/staff", tokenWith(t, ja, claimsFor("admin")))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hr blocked from admin route", func(t *testing.T) {
		rec := get(router, "/admin", tokenWith(t, ja, claimsFor("hr")))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed on admin route", func(t *testing.T) {
		rec := get(router, "/admin", tokenWith(t, ja, claimsFor("admin")))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
