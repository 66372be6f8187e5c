package record

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
	g.GET("/visits/:visit_id/vitals", h.getVitals)
	g.POST("/visits/:visit_id/vitals", h.upsertVitals)
	g.GET("/visits/:visit_id/hef", h.getHEF)
	g.POST("/visits/:visit_id/hef", h.upsertHEF)
	g.GET("/visits/:visit_id/visual-acuity", h.getVisualAcuity)
	g.POST("/visits/:visit_id/visual-acuity", h.upsertVisualAcuity)
	g.GET("/visits/:visit_id/presenting-complaint", h.getPresentingComplaint)
	g.POST("/visits/:visit_id/presenting-complaint", h.upsertPresentingComplaint)
	g.GET("/visits/:visit_id/history", h.getHistory)
	g.POST("/visits/:visit_id/history", h.upsertHistory)
	g.GET("/visits/:visit_id/seva", h.getSeva)
	g.POST("/visits/:visit_id/seva", h.upsertSeva)
	g.GET("/visits/:visit_id/physiotherapy", h.getPhysiotherapy)
	g.POST("/visits/:visit_id/physiotherapy", h.upsertPhysiotherapy)
	g.GET("/visits/:visit_id/consultation", h.getConsultation)
	g.POST("/visits/:visit_id/consultation", h.upsertConsultation)
	g.GET("/visits/:visit_id/referral", h.getReferral)
	g.POST("/visits/:visit_id/referral", h.upsertReferral)
	g.GET("/consultations/:id/referral", h.getReferralByConsultation)
}

func visitID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("visit_id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidField("visit_id", "must be a numeric visit id")
	}
	return id, nil
}

func updatedBy(c echo.Context) int64 {
	return auth.IdentityFromContext(c).ID
}

// upsert wires the common decode-validate-respond shape shared by every
// record type.
func upsert[In, Out any](c echo.Context, fn func(visitID int64, in In, by int64) (Out, error)) error {
	id, err := visitID(c)
	if err != nil {
		return err
	}
	var in In
	if err := c.Bind(&in); err != nil {
		return apperr.Invalid("malformed request body")
	}
	out, err := fn(id, in, updatedBy(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// get responds with the record or a JSON null when the visit has none.
func get[Out any](c echo.Context, fn func(visitID int64) (*Out, error)) error {
	id, err := visitID(c)
	if err != nil {
		return err
	}
	out, err := fn(id)
	if err != nil {
		return err
	}
	if out == nil {
		return c.JSONBlob(http.StatusOK, []byte("null"))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) getVitals(c echo.Context) error {
	return get(c, func(id int64) (*Vitals, error) {
		return h.svc.GetVitals(c.Request().Context(), id)
	})
}

func (h *Handler) upsertVitals(c echo.Context) error {
	return upsert(c, func(id int64, in VitalsInput, by int64) (Vitals, error) {
		return h.svc.UpsertVitals(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getHEF(c echo.Context) error {
	return get(c, func(id int64) (*HEF, error) {
		return h.svc.GetHEF(c.Request().Context(), id)
	})
}

func (h *Handler) upsertHEF(c echo.Context) error {
	return upsert(c, func(id int64, in HEFInput, by int64) (HEF, error) {
		return h.svc.UpsertHEF(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getVisualAcuity(c echo.Context) error {
	return get(c, func(id int64) (*VisualAcuity, error) {
		return h.svc.GetVisualAcuity(c.Request().Context(), id)
	})
}

func (h *Handler) upsertVisualAcuity(c echo.Context) error {
	return upsert(c, func(id int64, in VisualAcuityInput, by int64) (VisualAcuity, error) {
		return h.svc.UpsertVisualAcuity(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getPresentingComplaint(c echo.Context) error {
	return get(c, func(id int64) (*PresentingComplaint, error) {
		return h.svc.GetPresentingComplaint(c.Request().Context(), id)
	})
}

func (h *Handler) upsertPresentingComplaint(c echo.Context) error {
	return upsert(c, func(id int64, in PresentingComplaintInput, by int64) (PresentingComplaint, error) {
		return h.svc.UpsertPresentingComplaint(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getHistory(c echo.Context) error {
	return get(c, func(id int64) (*History, error) {
		return h.svc.GetHistory(c.Request().Context(), id)
	})
}

func (h *Handler) upsertHistory(c echo.Context) error {
	return upsert(c, func(id int64, in HistoryInput, by int64) (History, error) {
		return h.svc.UpsertHistory(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getSeva(c echo.Context) error {
	return get(c, func(id int64) (*Seva, error) {
		return h.svc.GetSeva(c.Request().Context(), id)
	})
}

func (h *Handler) upsertSeva(c echo.Context) error {
	return upsert(c, func(id int64, in SevaInput, by int64) (Seva, error) {
		return h.svc.UpsertSeva(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getPhysiotherapy(c echo.Context) error {
	return get(c, func(id int64) (*Physiotherapy, error) {
		return h.svc.GetPhysiotherapy(c.Request().Context(), id)
	})
}

func (h *Handler) upsertPhysiotherapy(c echo.Context) error {
	return upsert(c, func(id int64, in PhysiotherapyInput, by int64) (Physiotherapy, error) {
		return h.svc.UpsertPhysiotherapy(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getConsultation(c echo.Context) error {
	return get(c, func(id int64) (*ConsultationDetail, error) {
		return h.svc.GetConsultation(c.Request().Context(), id)
	})
}

func (h *Handler) upsertConsultation(c echo.Context) error {
	return upsert(c, func(id int64, in ConsultationInput, by int64) (Consultation, error) {
		return h.svc.UpsertConsultation(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getReferral(c echo.Context) error {
	return get(c, func(id int64) (*Referral, error) {
		return h.svc.GetReferral(c.Request().Context(), id)
	})
}

func (h *Handler) upsertReferral(c echo.Context) error {
	return upsert(c, func(id int64, in ReferralInput, by int64) (Referral, error) {
		return h.svc.UpsertReferral(c.Request().Context(), id, in, by)
	})
}

func (h *Handler) getReferralByConsultation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.InvalidField("id", "must be a numeric consultation id")
	}
	ref, err := h.svc.GetReferralByConsultation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if ref == nil {
		return c.JSONBlob(http.StatusOK, []byte("null"))
	}
	return c.JSON(http.StatusOK, ref)
}
