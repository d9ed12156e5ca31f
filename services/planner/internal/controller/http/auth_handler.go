package http

import (
	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/pkg/response"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	guard       *Guard
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, guard *Guard, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		guard:       guard,
		logger:      logger,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Log in
// @Description  Verify the admin credentials and start a new session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      429  {object}  response.Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req, nil); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		response.Fail(c, h.logger, apperr.BadRequest("Username and password are required"))
		return
	}

	sess, err := h.guard.Session(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if !h.authUseCase.VerifyCredentials(req.Username, req.Password) {
		h.logger.Warn("Failed login attempt for %q from %s", req.Username, c.ClientIP())
		response.Fail(c, h.logger, apperr.Unauthorized("Invalid credentials"))
		return
	}

	if err := h.guard.store.Regenerate(c.Request.Context(), sess); err != nil {
		response.Fail(c, h.logger, apperr.Internal("Could not start session", err))
		return
	}
	token, err := h.authUseCase.Establish(sess, req.Username)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	if err := h.guard.save(c, sess); err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	h.logger.Info("User %s logged in", req.Username)
	response.Success(c, gin.H{
		"username":   req.Username,
		"csrf_token": token,
	}, "Login successful")
}

// Logout godoc
// @Summary      Log out
// @Description  Destroy the current session
// @Tags         auth
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := h.guard.Session(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	username := h.authUseCase.Username(sess)
	h.authUseCase.Clear(sess)
	if err := h.guard.save(c, sess); err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	h.logger.Info("User %s logged out", username)
	response.Success(c, nil, "Logout successful")
}

// Status godoc
// @Summary      Session status
// @Description  Report whether the session is logged in. Never fails for anonymous callers.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	sess, err := h.guard.Session(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if h.authUseCase.Check(sess) != nil {
		// an expired session is cleared by Check and dropped here
		if sess.Options != nil && sess.Options.MaxAge < 0 {
			if err := h.guard.save(c, sess); err != nil {
				h.logger.Warn("Failed to destroy expired session: %v", err)
			}
		}
		response.Success(c, gin.H{"authenticated": false}, "")
		return
	}

	token, err := h.authUseCase.CSRFToken(sess)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{
		"authenticated": true,
		"username":      h.authUseCase.Username(sess),
		"csrf_token":    token,
	}, "")
}

// Token godoc
// @Summary      CSRF token
// @Description  Return the CSRF token of the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /api/auth/token [get]
func (h *AuthHandler) Token(c *gin.Context) {
	sess, err := h.guard.Session(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	token, err := h.authUseCase.CSRFToken(sess)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"csrf_token": token}, "")
}
