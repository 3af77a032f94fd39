package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/pkg/core/auth"
	"finboard/pkg/core/logger"
	"finboard/pkg/core/store"
	"finboard/pkg/models"
)

type Handler struct {
	svc   *auth.Service
	users *store.UserRepo
	log   *logger.Entry
}

func NewHandler(svc *auth.Service, users *store.UserRepo) *Handler {
	return &Handler{
		svc:   svc,
		users: users,
		log:   logger.WithComponent("api.auth"),
	}
}

// RegisterRoutes mounts the unauthenticated auth endpoints.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/register", h.Register)
	r.POST("/token", h.Token)
}

func (h *Handler) Register(c *gin.Context) {
	var in models.RegisterIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	hashed, err := h.svc.HashPassword(in.Password)
	if err != nil {
		h.log.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	u, err := h.users.Create(c.Request.Context(), in.Username, hashed)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already registered"})
			return
		}
		h.log.WithError(err).Error("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.UserOut{
		ID:       u.ID,
		Username: u.Username,
		IsActive: u.IsActive,
	})
}

// Token exchanges form credentials for a bearer token.
func (h *Handler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "username and password are required"})
		return
	}

	u, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.WithError(err).Error("failed to look up user")
		}
		h.rejectCredentials(c)
		return
	}
	if !h.svc.CheckPassword(u.HashedPassword, password) {
		h.rejectCredentials(c)
		return
	}

	token, err := h.svc.CreateToken(u.Username)
	if err != nil {
		h.log.WithError(err).Error("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) rejectCredentials(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
}
