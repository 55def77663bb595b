package handler

import (
	"log/slog"
	"net/http"
	"time"

	"estate/config"
	"estate/internal/delivery/http/response"
	"estate/internal/domain/entity"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountHandler holds dependencies for identity-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, cfg *config.Config, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, cfg: cfg, logger: logger}
}

// Signup handles registration. Multipart with an optional profile_picture file.
func (h *AccountHandler) Signup(c echo.Context) error {
	input := &usecase.SignupInput{
		Name:     c.FormValue("user_name"),
		Email:    c.FormValue("user_email"),
		Phone:    c.FormValue("user_phone"),
		Password: c.FormValue("password"),
		Role:     c.FormValue("role"),
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	picture, err := readAttachment(c, "profile_picture")
	if err != nil {
		return err
	}
	input.Picture = picture

	result, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setAuthCookie(c, result.Token)

	return response.JSON(c, http.StatusCreated, result.Account)
}

// Login authenticates by email or phone and sets the token cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	var body struct {
		LoginID  string `json:"login_id" form:"login_id"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.LoginInput{LoginID: body.LoginID, Password: body.Password}
	if err := c.Validate(input); err != nil {
		return err
	}

	result, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setAuthCookie(c, result.Token)

	return response.JSON(c, http.StatusOK, result.Account)
}

// Logout expires the token cookie.
func (h *AccountHandler) Logout(c echo.Context) error {
	h.clearAuthCookie(c)

	return response.Message(c, http.StatusOK, "Logged out successfully")
}

// GetProfile returns the caller's account merged with its agent profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, view)
}

// UpdateProfile applies a partial self-update. Multipart; agent professional
// fields ride along for agent-role callers.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	input := &usecase.UpdateAccountInput{
		Name:            c.FormValue("user_name"),
		Email:           c.FormValue("user_email"),
		Phone:           c.FormValue("user_phone"),
		Password:        c.FormValue("password"),
		ProposedPicture: formOptional(c, "profile_picture"),

		Location:       c.FormValue("agent_location"),
		Bio:            c.FormValue("agent_bio"),
		Experience:     c.FormValue("experience"),
		RawLanguages:   c.FormValue("languages"),
		RawCommunities: c.FormValue("communities"),
		RawSpecialties: c.FormValue("specialties"),
		RawPortfolio:   c.FormValue("agent_portfolio"),
	}

	picture, err := readAttachment(c, "profile_picture")
	if err != nil {
		return err
	}
	input.Picture = picture

	view, err := h.uc.UpdateProfile(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, view)
}

// List pages all accounts except the caller's own. Admin only.
func (h *AccountHandler) List(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	page, err := h.uc.List(c.Request().Context(), id, usecase.ListAccountsQuery{
		Role:  c.QueryParam("role"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, page)
}

// DashboardStats summarizes the caller's visible slice of the system.
func (h *AccountHandler) DashboardStats(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	stats, err := h.uc.DashboardStats(c.Request().Context(), id, callerRole(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, stats)
}

// UpdateStatus sets an account's status. Admin only.
func (h *AccountHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var body struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.UpdateStatus(c.Request().Context(), id, entity.AccountStatus(body.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, account)
}

// UpdateRole sets an account's role. Admin only.
func (h *AccountHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var body struct {
		Role string `json:"role" form:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.UpdateRole(c.Request().Context(), id, entity.Role(body.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, account)
}

// Delete removes an account and cascades its media and dependents. Admin only.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "User removed")
}

func (h *AccountHandler) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.Auth.TokenTTL),
		HttpOnly: true,
		Secure:   h.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AccountHandler) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
