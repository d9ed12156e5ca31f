package usecase

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

// Session value keys.
const (
	SessionAuthenticated = "authenticated"
	SessionUsername      = "username"
	SessionLoginTime     = "login_time"
	SessionCSRFToken     = "csrf_token"
)

const csrfTokenBytes = 32

type AuthUseCase interface {
	// VerifyCredentials checks the single admin account. It does not touch
	// any session.
	VerifyCredentials(username, password string) bool
	// Establish marks sess as logged in as username and returns its CSRF
	// token. The caller regenerates the session id first.
	Establish(sess *sessions.Session, username string) (string, error)
	// Clear wipes sess and marks it for deletion on the next save.
	Clear(sess *sessions.Session)
	IsAuthenticated(sess *sessions.Session) bool
	Username(sess *sessions.Session) string
	// Check fails with Unauthorized for anonymous or expired sessions. An
	// expired session is cleared and must be saved by the caller.
	Check(sess *sessions.Session) error
	CSRFToken(sess *sessions.Session) (string, error)
	VerifyCSRF(sess *sessions.Session, token string) error
}

type AuthConfig struct {
	Username     string
	PasswordHash string
	Lifetime     time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type authUseCase struct {
	username     string
	passwordHash []byte
	lifetime     int64
	now          func() time.Time
	logger       *logger.Logger
}

func NewAuthUseCase(cfg AuthConfig, logger *logger.Logger) AuthUseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &authUseCase{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
		lifetime:     int64(cfg.Lifetime / time.Second),
		now:          now,
		logger:       logger,
	}
}

func (uc *authUseCase) VerifyCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.username)) == 1

	// bcrypt runs for every attempt so a wrong username costs the same
	err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		uc.logger.Error("Admin password hash is unusable: %v", err)
	}

	return userOK && err == nil
}

func (uc *authUseCase) Establish(sess *sessions.Session, username string) (string, error) {
	sess.Values[SessionAuthenticated] = true
	sess.Values[SessionUsername] = username
	sess.Values[SessionLoginTime] = uc.now().Unix()
	options(sess).MaxAge = 0
	return uc.CSRFToken(sess)
}

func (uc *authUseCase) Clear(sess *sessions.Session) {
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	options(sess).MaxAge = -1
}

func (uc *authUseCase) IsAuthenticated(sess *sessions.Session) bool {
	ok, _ := sess.Values[SessionAuthenticated].(bool)
	return ok
}

func (uc *authUseCase) Username(sess *sessions.Session) string {
	name, _ := sess.Values[SessionUsername].(string)
	return name
}

func (uc *authUseCase) Check(sess *sessions.Session) error {
	if !uc.IsAuthenticated(sess) {
		return apperr.Unauthorized("Authentication required")
	}

	loginTime, ok := sess.Values[SessionLoginTime].(int64)
	if !ok || uc.now().Unix()-loginTime > uc.lifetime {
		uc.Clear(sess)
		return apperr.Unauthorized("Session expired")
	}
	return nil
}

func (uc *authUseCase) CSRFToken(sess *sessions.Session) (string, error) {
	if token, ok := sess.Values[SessionCSRFToken].(string); ok && token != "" {
		return token, nil
	}

	key := securecookie.GenerateRandomKey(csrfTokenBytes)
	if key == nil {
		return "", apperr.Internal("An error occurred", errors.New("random source failed"))
	}
	token := hex.EncodeToString(key)
	sess.Values[SessionCSRFToken] = token
	return token, nil
}

func (uc *authUseCase) VerifyCSRF(sess *sessions.Session, token string) error {
	expected, _ := sess.Values[SessionCSRFToken].(string)
	if expected == "" || token == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		return apperr.Forbidden("Invalid CSRF token")
	}
	return nil
}

func options(sess *sessions.Session) *sessions.Options {
	if sess.Options == nil {
		sess.Options = &sessions.Options{}
	}
	return sess.Options
}
