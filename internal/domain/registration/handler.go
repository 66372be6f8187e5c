package registration

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
	g.POST("/registration", h.create)
	g.PUT("/registration/:patientId", h.update)
	g.DELETE("/registration/:patientId", h.delete)
}

func patientID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidField("patientId", "must be a numeric patient id")
	}
	return id, nil
}

func (h *Handler) create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}

	identity := auth.IdentityFromContext(c)
	result, err := h.svc.Create(c.Request().Context(), req, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) update(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}

	identity := auth.IdentityFromContext(c)
	result, err := h.svc.Update(c.Request().Context(), id, req, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) delete(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
