package patient

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/auth"
	"github.com/veasna/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/patients", h.list)
	g.GET("/patients/search", h.search)
	g.GET("/patients/:id", h.get)
	g.PUT("/patients/:id", h.update)
	g.DELETE("/patients/:id", h.delete)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidField("id", "must be a numeric id")
	}
	return id, nil
}

func (h *Handler) list(c echo.Context) error {
	locationID, err := strconv.ParseInt(c.QueryParam("location_id"), 10, 64)
	if err != nil {
		return apperr.InvalidField("location_id", "location_id is required and must be numeric")
	}
	page, err := h.svc.ListByLocation(c.Request().Context(), locationID, pagination.FromRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) search(c echo.Context) error {
	patients, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

// get returns the patient with its visit list. The response carries an ETag
// derived from the patient's last update so the tablets can cache it.
func (h *Handler) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	etag := fmt.Sprintf(`"%d-%d"`, detail.Patient.ID, detail.Patient.LastUpdatedAt.UnixMilli())
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	c.Response().Header().Set("ETag", etag)
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return apperr.Invalid("malformed request body")
	}

	identity := auth.IdentityFromContext(c)
	p, err := h.svc.Update(c.Request().Context(), id, in, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
