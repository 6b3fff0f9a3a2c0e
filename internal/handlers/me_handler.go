package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe echoes the identity carried by the token.
func (h *MeHandler) GetMe(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"id":    c.GetString(middleware.ContextUserID),
		"name":  c.GetString(middleware.ContextUserName),
		"email": c.GetString(middleware.ContextUserEmail),
		"role":  c.GetString(middleware.ContextUserRole),
	})
}
