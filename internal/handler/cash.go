package handler

import (
	"net/http"

	"github.com/LisandroRios/GestionDeVentas/internal/apierror"
	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/middleware"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/gin-gonic/gin"
)

type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler { return &CashHandler{svc: svc} }

// Open starts a register shift with a counted opening float.
func (h *CashHandler) Open(c *gin.Context) {
	var req dto.OpenCashRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.OpenedBy == nil {
		if claims := middleware.GetClaims(c); claims != nil {
			req.OpenedBy = &claims.Username
		}
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close ends the open shift, snapshotting expected vs counted cash.
func (h *CashHandler) Close(c *gin.Context) {
	var req dto.CloseCashRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.ClosedBy == nil {
		if claims := middleware.GetClaims(c); claims != nil {
			req.ClosedBy = &claims.Username
		}
	}
	resp, err := h.svc.Close(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Current returns the open session, or 404 when the register is closed.
func (h *CashHandler) Current(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("no open cash session"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashHandler) History(c *gin.Context) {
	var filter dto.CashHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.History(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list cash sessions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
