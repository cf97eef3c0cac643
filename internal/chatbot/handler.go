package chatbot

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Responder *Responder
}

func NewHandler(responder *Responder) *Handler {
	return &Handler{Responder: responder}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chatbot", h.chat)
}

type chatReq struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"response": "Missatge buit."})
		return
	}

	c.JSON(http.StatusOK, h.Responder.Respond(c.Request.Context(), req.Message))
}
