package visit

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/auth"
	"github.com/veasna/clinic/pkg/date"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/visits/by-location-and-date", h.queue)
	g.GET("/visits/:id", h.detail)
	g.PUT("/visits/:id", h.setQueueNumber)
}

func (h *Handler) queue(c echo.Context) error {
	locationID, err := strconv.ParseInt(c.QueryParam("location_id"), 10, 64)
	if err != nil {
		return apperr.InvalidField("location_id", "location_id is required and must be numeric")
	}
	day, err := date.Parse(c.QueryParam("visit_date"))
	if err != nil {
		return apperr.InvalidField("visit_date", "visit_date is required as YYYY-MM-DD")
	}

	entries, err := h.svc.Queue(c.Request().Context(), locationID, day)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []QueueEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.InvalidField("id", "must be a numeric visit id")
	}

	d, err := h.svc.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	etag := fmt.Sprintf(`"%d-%d"`, d.Visit.ID, d.Visit.LastUpdatedAt.UnixMilli())
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	c.Response().Header().Set("ETag", etag)
	return c.JSON(http.StatusOK, d)
}

type setQueueRequest struct {
	QueueNo string `json:"queue_no"`
}

func (h *Handler) setQueueNumber(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.InvalidField("id", "must be a numeric visit id")
	}
	var req setQueueRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}

	identity := auth.IdentityFromContext(c)
	v, err := h.svc.SetQueueNumber(c.Request().Context(), id, req.QueueNo, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}
