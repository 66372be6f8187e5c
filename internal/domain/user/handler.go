package user

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
	g.POST("/auth/login", h.login)
	g.POST("/users", h.create)
	g.GET("/users", h.list)
	g.GET("/users/me", h.me)
	g.DELETE("/users/:id", h.deactivate)
}

type loginRequest struct {
	Username string `json:"username"`
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}

	result, err := h.svc.Login(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) create(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Invalid("malformed request body")
	}
	u, err := h.svc.Create(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) list(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []User{}
	}
	return c.JSON(http.StatusOK, users)
}

// me returns the account behind the caller's token, or the anonymous
// placeholder in permissive mode.
func (h *Handler) me(c echo.Context) error {
	id := auth.IdentityFromContext(c)
	if id.IsAnonymous() {
		return c.JSON(http.StatusOK, User{ID: 0, Username: id.Username, IsActive: true})
	}
	u, err := h.svc.Get(c.Request().Context(), id.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) deactivate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.InvalidField("id", "must be a numeric id")
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
