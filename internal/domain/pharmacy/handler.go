package pharmacy

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/pharmacy", h.list)
	g.POST("/pharmacy", h.create)
	g.PUT("/pharmacy/:id", h.update)
	g.PATCH("/pharmacy/:id/adjust", h.adjust)
	g.DELETE("/pharmacy/:id", h.delete)
}

func itemID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidField("id", "must be a numeric item id")
	}
	return id, nil
}

func (h *Handler) list(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []Item{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) create(c echo.Context) error {
	var req CreateInput
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	identity := auth.IdentityFromContext(c)
	i, err := h.svc.Create(c.Request().Context(), req, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *Handler) update(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req UpdateInput
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	identity := auth.IdentityFromContext(c)
	i, err := h.svc.Update(c.Request().Context(), id, req, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

type adjustRequest struct {
	Delta *int64 `json:"delta"`
}

func (h *Handler) adjust(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req adjustRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	identity := auth.IdentityFromContext(c)
	i, err := h.svc.Adjust(c.Request().Context(), id, req.Delta, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) delete(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
