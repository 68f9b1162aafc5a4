package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oncallhq/user-directory/internal/api/metrics"
	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
	"github.com/oncallhq/user-directory/internal/infrastructure/session"
)

// AuthHandler owns the session lifecycle: login establishes a server-side
// session and sets the cookie, logout revokes both.
type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	sessions    *session.Manager
	cookie      session.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, sessions *session.Manager, cookie session.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		sessions:    sessions,
		cookie:      cookie,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionUser is the identity payload returned by login and session checks.
type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    sessionUser `json:"user"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
}

type profileResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// Login handles POST /api/auth/login. It verifies credentials and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	sess, err := h.sessions.Create(c.Request().Context(), user.ID, user.Role)
	if err != nil {
		return err
	}
	h.cookie.Write(c.Response(), sess.ID, sess.ExpiresAt)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		User: sessionUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

// Logout handles POST /api/auth/logout. It revokes the session and clears the
// cookie. Logging out without a session still succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Delete(c.Request().Context(), ctxSessionID(c)); err != nil {
		return err
	}
	h.cookie.Clear(c.Response())

	return c.JSON(http.StatusOK, logoutResponse{
		Success: true,
		Message: "Logout successful",
	})
}

// Me handles GET /api/auth/me. It reports whether the caller holds a live
// session and, if so, who they are. Always 200; anonymity is not an error here.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	caller := ctxCaller(c)
	if !caller.IsAuthenticated() {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	user, err := h.userService.Get(c.Request().Context(), caller, caller.Actor.ID)
	if err != nil {
		// The record behind the session is gone; treat as signed out.
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User: &sessionUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfile handles PUT /api/auth/update, where the caller edits their own
// name, email and password in one shot.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "New profile values"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  fieldErrorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/update [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), ctxCaller(c), ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    *user,
	})
}
