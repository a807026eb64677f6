package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/user-service/internal/api/metrics"
	"github.com/vidtube/user-service/internal/core/domain"
	"github.com/vidtube/user-service/internal/core/ports"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// UserHandler handles HTTP requests for account and session operations.
type UserHandler struct {
	service ports.UserService
	events  ports.EventSink
}

// NewUserHandler builds a UserHandler. The event sink is optional; when nil
// no audit events are emitted.
func NewUserHandler(service ports.UserService, events ports.EventSink) *UserHandler {
	return &UserHandler{service: service, events: events}
}

type registerRequest struct {
	FullName string `form:"fullName" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginData struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Register creates a new user account from a multipart form.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName    formData  string  true   "Full name"
// @Param        email       formData  string  true   "Email address"
// @Param        username    formData  string  true   "Username (stored lowercased)"
// @Param        password    formData  string  true   "Password"
// @Param        avatar      formData  file    true   "Avatar image"
// @Param        coverImage  formData  file    false  "Cover image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	avatar, avatarFile, err := formFile(c, "avatar")
	if err != nil {
		return err
	}
	if avatarFile != nil {
		defer avatarFile.Close()
	}

	coverImage, coverFile, err := formFile(c, "coverImage")
	if err != nil {
		return err
	}
	if coverFile != nil {
		defer coverFile.Close()
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: coverImage,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.emit(c, user.Username, domain.ActionRegistered)

	return respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login authenticates a user and starts a session.
//
// @Summary      Login with username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /v1/users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	setAuthCookies(c, result.Tokens)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.emit(c, result.User.Username, domain.ActionLoggedIn)

	return respond(c, http.StatusOK, loginData{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// Logout ends the caller's session.
//
// @Summary      Logout the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /v1/users/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	userID, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Logout(c.Request().Context(), userID); err != nil {
		return err
	}

	clearAuthCookies(c)
	metrics.LogoutsTotal.Inc()
	h.emit(c, username, domain.ActionLoggedOut)

	return respond(c, http.StatusOK, map[string]any{}, "User logged out")
}

// Me returns the authenticated caller's sanitized profile.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user, "Current user fetched successfully")
}

// formFile opens the named multipart file. A missing file is not an error
// here: presence rules belong to the service contract.
func formFile(c echo.Context, name string) (*ports.FileUpload, multipart.File, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file "+name)
	}

	return &ports.FileUpload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, f, nil
}

func (h *UserHandler) emit(c echo.Context, username string, action domain.AccountAction) {
	if h.events == nil {
		return
	}
	h.events.Enqueue(ports.AccountEventInput{
		Username:  username,
		Action:    action,
		Timestamp: time.Now().UTC(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

// Session cookies use the same names on set and clear so a logout always
// removes exactly what login created.
func setAuthCookies(c echo.Context, tokens domain.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     accessCookieName,
		Value:    tokens.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
}

func clearAuthCookies(c echo.Context) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
		})
	}
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrUploadFailed):
		return "upload_failed"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_credentials"
	default:
		return "error"
	}
}
