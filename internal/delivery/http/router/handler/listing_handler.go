package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"estate/internal/delivery/http/response"
	"estate/internal/domain/entity"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListingHandler holds dependencies for property listing handlers.
type ListingHandler struct {
	uc     usecase.ListingUsecase
	logger *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler, injected by Fx.
func NewListingHandler(uc usecase.ListingUsecase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{uc: uc, logger: logger}
}

// Create persists a new listing from a multipart form carrying scalar
// fields, JSON-encoded list fields, and hero/gallery/brochure files.
func (h *ListingHandler) Create(c echo.Context) error {
	creatorID, err := callerID(c)
	if err != nil {
		return err
	}

	price, err := formFloat(c, "starting_price")
	if err != nil {
		return err
	}

	input := &usecase.CreateListingInput{
		Title:         c.FormValue("title"),
		Headline:      c.FormValue("headline"),
		Description:   c.FormValue("description"),
		Developer:     c.FormValue("developer"),
		Community:     c.FormValue("community"),
		Location:      c.FormValue("location"),
		Emirate:       c.FormValue("emirate"),
		Country:       c.FormValue("country"),
		Category:      c.FormValue("property_category"),
		StartingPrice: price,
		Currency:      c.FormValue("currency"),
		Handover:      c.FormValue("handover"),
		Featured:      c.FormValue("featured") == "true",
		IsNew:         c.FormValue("is_new") == "true",
		Status:        c.FormValue("status"),

		RawTypes:        c.FormValue("property_types"),
		RawAmenities:    c.FormValue("amenities"),
		RawNearbyPlaces: c.FormValue("nearby_locations"),
		RawUnits:        c.FormValue("units"),
		RawPaymentPlan:  c.FormValue("payment_plan"),
		RawAgents:       c.FormValue("agents"),
		RawBrochures:    c.FormValue("brochure_pdfs"),
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if input.Hero, err = readAttachment(c, "hero_image"); err != nil {
		return err
	}
	if input.Gallery, err = readAttachments(c, "gallery", maxGalleryFiles); err != nil {
		return err
	}
	if input.Brochures, err = readAttachments(c, "brochure_pdfs", maxBrochureFiles); err != nil {
		return err
	}

	listing, err := h.uc.Create(c.Request().Context(), creatorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, listing)
}

// List pages the public listing index with optional filters.
func (h *ListingHandler) List(c echo.Context) error {
	query := usecase.ListListingsQuery{
		Category: c.QueryParam("category"),
		Type:     c.QueryParam("property_types"),
		Country:  c.QueryParam("country"),
		Search:   c.QueryParam("search"),
		Featured: queryBoolPtr(c, "featured"),
		IsNew:    queryBoolPtr(c, "is_new"),
		Bedrooms: queryIntPtr(c, "bedrooms"),
		MinPrice: queryFloatPtr(c, "minPrice"),
		MaxPrice: queryFloatPtr(c, "maxPrice"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	if creator := c.QueryParam("createdBy"); creator != "" {
		id, err := uuid.Parse(creator)
		if err != nil {
			return errors.WithStack(err)
		}
		query.CreatedBy = id
	}

	page, err := h.uc.List(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, page)
}

// GetBySlug returns the listing behind a public slug.
func (h *ListingHandler) GetBySlug(c echo.Context) error {
	listing, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, listing)
}

// Update applies a partial update with media reconciliation. Absent form
// fields leave the persisted value untouched.
func (h *ListingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	price, err := formFloatPtr(c, "starting_price")
	if err != nil {
		return err
	}

	input := &usecase.UpdateListingInput{
		Title:         c.FormValue("title"),
		Headline:      c.FormValue("headline"),
		Description:   c.FormValue("description"),
		Developer:     c.FormValue("developer"),
		Community:     c.FormValue("community"),
		Location:      c.FormValue("location"),
		Emirate:       c.FormValue("emirate"),
		Country:       c.FormValue("country"),
		Category:      c.FormValue("property_category"),
		StartingPrice: price,
		Currency:      c.FormValue("currency"),
		Handover:      c.FormValue("handover"),
		Featured:      formBoolPtr(c, "featured"),
		IsNew:         formBoolPtr(c, "is_new"),
		Status:        c.FormValue("status"),

		RawTypes:        c.FormValue("property_types"),
		RawAmenities:    c.FormValue("amenities"),
		RawNearbyPlaces: c.FormValue("nearby_locations"),
		RawUnits:        c.FormValue("units"),
		RawPaymentPlan:  c.FormValue("payment_plan"),
		RawAgents:       c.FormValue("agents"),

		ProposedHero:     formOptional(c, "hero_image"),
		ProposedGallery:  formOptional(c, "gallery"),
		ProposedBrochure: formOptional(c, "brochure_pdfs"),
	}

	if input.Hero, err = readAttachment(c, "hero_image"); err != nil {
		return err
	}
	if input.Gallery, err = readAttachments(c, "gallery", maxGalleryFiles); err != nil {
		return err
	}
	if input.Brochures, err = readAttachments(c, "brochure_pdfs", maxBrochureFiles); err != nil {
		return err
	}

	listing, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, listing)
}

// AssignAgents replaces the listing's agent reference list.
func (h *ListingHandler) AssignAgents(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var body struct {
		Agents json.RawMessage `json:"agents"`
	}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	listing, err := h.uc.AssignAgents(c.Request().Context(), id, string(body.Agents))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, listing)
}

// UpdateStatus flips the listing between active and inactive.
func (h *ListingHandler) UpdateStatus(c echo.Context) error {
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

	listing, err := h.uc.UpdateStatus(c.Request().Context(), id, entity.ListingStatus(body.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, listing)
}

// Delete purges the listing's media and removes the row. Admin only.
func (h *ListingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Property removed")
}
