// Package admin exposes the maintenance surface: a password-for-token
// exchange and a JWT-gated rebuild of the recipes table.
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ReloadFunc re-ingests the source data and returns the loaded row count.
type ReloadFunc func(ctx context.Context) (int, error)

type Handler struct {
	Tokens       TokenService
	PasswordHash string
	Reload       ReloadFunc
	Log          *zap.Logger
}

func NewHandler(tokens TokenService, passwordHash string, reload ReloadFunc, log *zap.Logger) *Handler {
	return &Handler{Tokens: tokens, PasswordHash: passwordHash, Reload: reload, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/token", h.token)
	rg.POST("/reload", RequireToken(h.Tokens), h.reload)
}

type tokenReq struct {
	Password string `json:"password"`
}

func (h *Handler) token(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, exp, err := h.Tokens.Sign()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) reload(c *gin.Context) {
	n, err := h.Reload(c.Request.Context())
	if err != nil {
		h.Log.Error("reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}

	h.Log.Info("recipes reloaded", zap.Int("rows", n))
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": n})
}
