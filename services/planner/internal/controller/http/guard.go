package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/pkg/response"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionContextKey = "session"
	csrfHeader        = "X-CSRF-Token"
	csrfField         = "csrf_token"
)

// SessionStore is a sessions.Store that can rotate a session id.
type SessionStore interface {
	sessions.Store
	Regenerate(ctx context.Context, sess *sessions.Session) error
}

// Guard loads the request session and enforces login and CSRF checks.
type Guard struct {
	auth        usecase.AuthUseCase
	store       SessionStore
	sessionName string
	logger      *logger.Logger
}

func NewGuard(auth usecase.AuthUseCase, store SessionStore, sessionName string, logger *logger.Logger) *Guard {
	return &Guard{
		auth:        auth,
		store:       store,
		sessionName: sessionName,
		logger:      logger,
	}
}

// Session returns the session for the current request.
func (g *Guard) Session(c *gin.Context) (*sessions.Session, error) {
	if v, ok := c.Get(sessionContextKey); ok {
		return v.(*sessions.Session), nil
	}
	sess, err := g.store.Get(c.Request, g.sessionName)
	if err != nil {
		return nil, apperr.Internal("Session unavailable", err)
	}
	c.Set(sessionContextKey, sess)
	return sess, nil
}

func (g *Guard) save(c *gin.Context, sess *sessions.Session) error {
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return apperr.Internal("Could not save session", err)
	}
	return nil
}

// RequireAuth rejects anonymous and expired sessions. An expired session is
// destroyed before the 401 is sent.
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := g.Session(c)
		if err != nil {
			response.Fail(c, g.logger, err)
			return
		}

		if err := g.auth.Check(sess); err != nil {
			if sess.Options != nil && sess.Options.MaxAge < 0 {
				if saveErr := g.save(c, sess); saveErr != nil {
					g.logger.Warn("Failed to destroy expired session: %v", saveErr)
				}
			}
			response.Fail(c, g.logger, err)
			return
		}

		c.Next()
	}
}

// RequireCSRF checks the session token on state-changing methods. The token
// is read from the X-CSRF-Token header, the csrf_token form field or the
// csrf_token member of a JSON body.
func (g *Guard) RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		sess, err := g.Session(c)
		if err != nil {
			response.Fail(c, g.logger, err)
			return
		}

		if err := g.auth.VerifyCSRF(sess, csrfToken(c)); err != nil {
			response.Fail(c, g.logger, err)
			return
		}

		c.Next()
	}
}

func csrfToken(c *gin.Context) string {
	if token := c.GetHeader(csrfHeader); token != "" {
		return token
	}

	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return c.PostForm(csrfField)
	case gin.MIMEJSON, "":
		if c.Request.Body == nil {
			return ""
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return ""
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var payload struct {
			CSRFToken string `json:"csrf_token"`
		}
		if json.Unmarshal(body, &payload) != nil {
			return ""
		}
		return payload.CSRFToken
	}
	return ""
}
