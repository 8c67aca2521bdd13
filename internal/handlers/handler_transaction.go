package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler serves the transaction lifecycle endpoints.
type transactionHandler struct {
	transactionSvc portssvc.TransactionSvcFacade
	historySvc     portssvc.HistorySvcFacade
}

func newTransactionHandler(transactionSvc portssvc.TransactionSvcFacade, historySvc portssvc.HistorySvcFacade) *transactionHandler {
	return &transactionHandler{transactionSvc: transactionSvc, historySvc: historySvc}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction request", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	resp, err := h.transactionSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	resp, err := h.transactionSvc.Post(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) verifyTransaction(c *gin.Context) {
	verifier := c.Query("userId")
	if verifier == "" {
		verifier = "SYSTEM"
	}
	resp, err := h.transactionSvc.Verify(c.Request.Context(), c.Param("id"), verifier)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	var req dto.ReverseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.transactionSvc.Reverse(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	resp, err := h.transactionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	resp, err := h.transactionSvc.List(c.Request.Context(), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) listAccountHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	resp, err := h.historySvc.ListByAccount(c.Request.Context(), c.Param("accountNo"), limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
