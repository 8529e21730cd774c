package handler

import (
	"net/http"

	"github.com/LisandroRios/GestionDeVentas/internal/apierror"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// DashboardToday aggregates today's sales: count, gross total, breakdown
// by payment method and top-selling variants. Cached briefly in Redis.
func (h *ReportsHandler) DashboardToday(c *gin.Context) {
	resp, err := h.svc.DashboardToday(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock lists active variants at or below their restock threshold.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list low stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
