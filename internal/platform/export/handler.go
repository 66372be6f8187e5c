package export

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/pkg/date"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type Handler struct {
	records *record.Service
}

func NewHandler(records *record.Service) *Handler {
	return &Handler{records: records}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/export/referrals-by-date", h.referralsByDate)
}

func (h *Handler) referralsByDate(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return apperr.InvalidField("date", "a visit date is required")
	}
	day, err := date.Parse(raw)
	if err != nil {
		return apperr.InvalidField("date", "must be formatted YYYY-MM-DD")
	}

	format := c.QueryParam("format")
	if format != "pdf" && format != "excel" {
		return apperr.InvalidField("format", `must be "pdf" or "excel"`)
	}

	rows, err := h.records.ReferralsByDate(c.Request().Context(), day)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperr.NotFound(fmt.Sprintf("no referrals found for date %s", day))
	}

	switch format {
	case "pdf":
		body, err := ReferralLetters(rows)
		if err != nil {
			return apperr.Internal(err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="Referrals_%s.pdf"`, day))
		return c.Blob(http.StatusOK, contentTypePDF, body)
	default:
		body, err := ReferralsWorkbook(day, rows)
		if err != nil {
			return apperr.Internal(err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="Referrals_%s.xlsx"`, day))
		return c.Blob(http.StatusOK, contentTypeXLSX, body)
	}
}
