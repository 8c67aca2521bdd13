package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the EOD/BOD and clock administration endpoints.
type adminHandler struct {
	eodSvc     portssvc.EODSvcFacade
	bodSvc     portssvc.BODSvcFacade
	clockSvc   portssvc.SystemClockSvcFacade
	reportsSvc portssvc.ReportsSvcFacade
	adminUser  string
}

func newAdminHandler(
	eodSvc portssvc.EODSvcFacade,
	bodSvc portssvc.BODSvcFacade,
	clockSvc portssvc.SystemClockSvcFacade,
	reportsSvc portssvc.ReportsSvcFacade,
	adminUser string,
) *adminHandler {
	return &adminHandler{
		eodSvc:     eodSvc,
		bodSvc:     bodSvc,
		clockSvc:   clockSvc,
		reportsSvc: reportsSvc,
		adminUser:  adminUser,
	}
}

func (h *adminHandler) userID(c *gin.Context) string {
	if userID := c.Query("userId"); userID != "" {
		return userID
	}
	return h.adminUser
}

func (h *adminHandler) runEOD(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := h.userID(c)
	logger.Info("EOD run requested", slog.String("user_id", userID))

	result, err := h.eodSvc.RunEOD(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *adminHandler) runEODJob(c *gin.Context) {
	jobNumber, err := strconv.Atoi(c.Param("job"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: job must be a number", apperrors.ErrValidation))
		return
	}

	result, err := h.eodSvc.RunJob(c.Request.Context(), jobNumber, h.userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *adminHandler) eodStatus(c *gin.Context) {
	status, err := h.eodSvc.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *adminHandler) setSystemDate(c *gin.Context) {
	dateStr := c.Query("systemDateStr")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(c, fmt.Errorf("%w: systemDateStr must be YYYY-MM-DD", apperrors.ErrValidation))
		return
	}

	if err := h.clockSvc.Set(c.Request.Context(), date, h.userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "systemDate": dateStr})
}

// downloadReport streams the raw bytes of a generated Job-7 report.
func (h *adminHandler) downloadReport(c *gin.Context) {
	kind := c.Param("kind")
	yyyymmdd := c.Param("yyyymmdd")

	data, fileName, err := h.reportsSvc.ReadReport(c.Request.Context(), kind, yyyymmdd)
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := "text/csv"
	if strings.HasSuffix(fileName, ".xlsx") {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, data)
}

func (h *adminHandler) runBOD(c *gin.Context) {
	result, err := h.bodSvc.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *adminHandler) bodStatus(c *gin.Context) {
	status, err := h.bodSvc.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
