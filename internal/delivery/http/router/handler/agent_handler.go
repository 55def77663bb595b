package handler

import (
	"log/slog"
	"net/http"

	"estate/internal/delivery/http/response"
	"estate/internal/domain/entity"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AgentHandler holds dependencies for agent-profile handlers.
type AgentHandler struct {
	uc     usecase.AgentUsecase
	logger *slog.Logger
}

// NewAgentHandler is the constructor for AgentHandler, injected by Fx.
func NewAgentHandler(uc usecase.AgentUsecase, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{uc: uc, logger: logger}
}

// GetProfile returns the caller's agent profile, creating it lazily.
func (h *AgentHandler) GetProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	profile, err := h.uc.GetOwnProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, profile)
}

// UpdateProfile applies a partial self-update. Multipart with an optional
// avatar_url file; the same field name carries a retained URL as a value.
func (h *AgentHandler) UpdateProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	input := &usecase.UpdateAgentInput{
		Name:           c.FormValue("agent_name"),
		Email:          c.FormValue("agent_email"),
		Phone:          c.FormValue("agent_phone"),
		Title:          c.FormValue("agent_role"),
		Location:       c.FormValue("agent_location"),
		Bio:            c.FormValue("agent_bio"),
		Experience:     c.FormValue("experience"),
		RawLanguages:   c.FormValue("languages"),
		RawCommunities: c.FormValue("communities"),
		RawSpecialties: c.FormValue("specialties"),
		RawPortfolio:   c.FormValue("agent_portfolio"),
		ProposedAvatar: formOptional(c, "avatar_url"),
	}

	avatar, err := readAttachment(c, "avatar_url")
	if err != nil {
		return err
	}
	input.Avatar = avatar

	profile, err := h.uc.UpdateOwnProfile(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, profile)
}

// List pages the public agent directory.
func (h *AgentHandler) List(c echo.Context) error {
	page, err := h.uc.List(c.Request().Context(), usecase.ListAgentsQuery{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, page)
}

// GetBySlug returns the public profile behind a slug.
func (h *AgentHandler) GetBySlug(c echo.Context) error {
	profile, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, profile)
}

// Create registers a new agent account with its profile. Admin only.
func (h *AgentHandler) Create(c echo.Context) error {
	var body struct {
		Name     string `json:"user_name" form:"user_name"`
		Email    string `json:"user_email" form:"user_email"`
		Phone    string `json:"user_phone" form:"user_phone"`
		Password string `json:"password" form:"password"`
		Title    string `json:"agent_role" form:"agent_role"`
		Location string `json:"agent_location" form:"agent_location"`
		Bio      string `json:"agent_bio" form:"agent_bio"`
	}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.CreateAgentInput{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Password: body.Password,
		Title:    body.Title,
		Location: body.Location,
		Bio:      body.Bio,
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	profile, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, profile)
}

// UpdateByID is the admin edit of another agent, restricted to status.
func (h *AgentHandler) UpdateByID(c echo.Context) error {
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

	profile, err := h.uc.UpdateByID(c.Request().Context(), id, entity.AgentStatus(body.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, profile)
}

// UpdateStatus sets or toggles the status of the profile behind an account
// id or slug. Admin only.
func (h *AgentHandler) UpdateStatus(c echo.Context) error {
	var body struct {
		Status *string `json:"status" form:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	var status *entity.AgentStatus
	if body.Status != nil {
		s := entity.AgentStatus(*body.Status)
		status = &s
	}

	profile, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, profile)
}
