package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// newLimitedRouter собирает роутер так же, как cmd/main.go:
// публичные маршруты с лимитом по IP, защищенные с Auth и лимитом по пользователю
func newLimitedRouter(rps float64, burst int) *mux.Router {
	ok := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	public := api.PathPrefix("").Subrouter()
	public.HandleFunc("/bookings/check-availability", ok(http.StatusOK)).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(Auth(testSecret, "hotel-auth"))

	public.Use(NewRateLimiter(rps, burst).Middleware())
	protected.Use(NewRateLimiter(rps, burst).Middleware())

	protected.HandleFunc("/bookings", ok(http.StatusCreated)).Methods(http.MethodPost)

	return r
}

func TestRouter_ProtectedRoutesAreLimitedPerUser(t *testing.T) {
	router := newLimitedRouter(0.001, 1)

	tokenFor := func(userID string) string {
		claims := validClaims()
		claims["sub"] = userID
		return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
	}
	alice, bob := tokenFor("alice"), tokenFor("bob")

	createBooking := func(token string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, createBooking(alice))
	// тот же IP, но другой пользователь со своим бакетом
	assert.Equal(t, http.StatusCreated, createBooking(bob))
	assert.Equal(t, http.StatusTooManyRequests, createBooking(alice))
	assert.Equal(t, http.StatusTooManyRequests, createBooking(bob))
}

func TestRouter_PublicRoutesAreLimitedPerIP(t *testing.T) {
	router := newLimitedRouter(0.001, 1)

	checkAvailability := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/check-availability", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, checkAvailability("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, checkAvailability("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, checkAvailability("10.0.0.2:5000"))
}

func TestRouter_UnauthenticatedRequestDoesNotSpendUserBucket(t *testing.T) {
	router := newLimitedRouter(0.001, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())
	req = httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
