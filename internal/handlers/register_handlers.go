package handlers

import (
	"net/http"
	"reflect"

	"github.com/bancsuite/coreledger/internal/core/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterHandlers mounts every route group on the engine.
func RegisterHandlers(r *gin.Engine, svcs *services.Container, adminUser string) {
	registerDecimalValidation()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	txnHandler := newTransactionHandler(svcs.Transaction, svcs.History)
	transactions := r.Group("/transactions")
	{
		transactions.POST("/entry", txnHandler.createTransaction)
		transactions.GET("", txnHandler.listTransactions)
		transactions.GET("/:id", txnHandler.getTransaction)
		transactions.POST("/:id/post", txnHandler.postTransaction)
		transactions.POST("/:id/verify", txnHandler.verifyTransaction)
		transactions.POST("/:id/reverse", txnHandler.reverseTransaction)
	}

	r.GET("/accounts/:accountNo/history", txnHandler.listAccountHistory)

	adminH := newAdminHandler(svcs.EOD, svcs.BOD, svcs.Clock, svcs.Reports, adminUser)
	admin := r.Group("/admin")
	{
		admin.POST("/run-eod", adminH.runEOD)
		admin.POST("/eod/batch/:job", adminH.runEODJob)
		admin.GET("/eod/status", adminH.eodStatus)
		admin.POST("/set-system-date", adminH.setSystemDate)
		admin.GET("/eod/batch-job-7/download/:kind/:yyyymmdd", adminH.downloadReport)
		admin.POST("/bod/run", adminH.runBOD)
		admin.GET("/bod/status", adminH.bodStatus)
	}

	glH := newGLHandler(svcs.GL)
	gl := r.Group("/gl-setup")
	{
		gl.GET("", glH.listByLayer)
		gl.GET("/interest-payable-receivable", glH.interestPayableReceivable)
		gl.GET("/interest-income-expenditure", glH.interestIncomeExpenditure)
	}
}

// registerDecimalValidation teaches the binding validator to treat
// decimal.Decimal as a float so numeric constraint tags apply to amounts.
func registerDecimalValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	}
}
