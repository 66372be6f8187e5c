package location

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/veasna/clinic/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/locations", h.list)
	g.POST("/locations", h.create)
	g.GET("/locations/:id", h.get)
	g.PUT("/locations/:id", h.rename)
	g.DELETE("/locations/:id", h.deactivate)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidField("id", "must be a numeric id")
	}
	return id, nil
}

type upsertRequest struct {
	Name string `json:"name"`
}

func (h *Handler) list(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	locations, err := h.svc.List(c.Request().Context(), includeInactive)
	if err != nil {
		return err
	}
	if locations == nil {
		locations = []Location{}
	}
	return c.JSON(http.StatusOK, locations)
}

func (h *Handler) create(c echo.Context) error {
	var req upsertRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	l, err := h.svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	l, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) rename(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req upsertRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	l, err := h.svc.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
