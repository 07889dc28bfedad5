package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
	"shoplist/internal/service"
)

// TagHandler serves the category and store endpoints; one generic
// handler covers both kinds.
type TagHandler[T any] struct {
	svc service.TagService[T]
}

// NewCategoryHandler creates the Category handler.
func NewCategoryHandler(svc service.TagService[model.Category]) *TagHandler[model.Category] {
	return &TagHandler[model.Category]{svc: svc}
}

// NewStoreHandler creates the Store handler.
func NewStoreHandler(svc service.TagService[model.Store]) *TagHandler[model.Store] {
	return &TagHandler[model.Store]{svc: svc}
}

// TagRequest represents a category/store creation request. Visibility is
// not client-settable: new tags are always private.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// List godoc
// @Summary List visible categories or stores
// @Description Returns the requester's tags plus shared defaults, shared first.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.OwnedTag
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *TagHandler[T]) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tags, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tags)
}

// Create godoc
// @Summary Create (or resolve) a category or store
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "Tag data"
// @Success 201 {object} model.OwnedTag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *TagHandler[T]) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.svc.ResolveOrCreate(c.Request().Context(), req.Name, userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, tag)
}

// Delete godoc
// @Summary Delete an owned category or store
// @Description Items referencing the tag keep existing with the link cleared.
// @Tags tags
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *TagHandler[T]) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
