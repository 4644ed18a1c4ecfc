package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/middleware"
	"aura/utils"
)

// MyPaymentsHandler handles GET /api/payments/my.
func (b *Bundle) MyPaymentsHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	page, size := pagination(c)

	listed, err := api.MyPayments(c.Request.Context(), page, size)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, listed)
}

// GetPaymentHandler handles GET /api/payments/:id.
func (b *Bundle) GetPaymentHandler(c *gin.Context) {
	api := middleware.APIFrom(c)

	id, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment id", c.Param("id"))
		return
	}

	payment, err := api.Payment(c.Request.Context(), id)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
