package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bancsuite/coreledger/internal/apperrors"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// glHandler serves read-only chart-of-accounts queries used by the account
// opening screens.
type glHandler struct {
	glSvc portssvc.GLSvcFacade
}

func newGLHandler(glSvc portssvc.GLSvcFacade) *glHandler {
	return &glHandler{glSvc: glSvc}
}

func (h *glHandler) listByLayer(c *gin.Context) {
	layerID, err := strconv.Atoi(c.Query("layerId"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: layerId must be a number", apperrors.ErrValidation))
		return
	}

	if parent := c.Query("parentGlNum"); parent != "" {
		gls, err := h.glSvc.ListByLayerAndParent(c.Request.Context(), layerID, parent)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gls)
		return
	}

	gls, err := h.glSvc.ListByLayer(c.Request.Context(), layerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gls)
}

func (h *glHandler) interestPayableReceivable(c *gin.Context) {
	gls, err := h.glSvc.InterestPayableReceivableLeaves(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gls)
}

func (h *glHandler) interestIncomeExpenditure(c *gin.Context) {
	gls, err := h.glSvc.InterestIncomeExpenditureLeaves(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gls)
}
