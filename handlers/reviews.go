package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/middleware"
	"aura/utils"
)

// MyReviewsHandler handles GET /api/reviews/my. Technicians see reviews
// received, customers see reviews written.
func (b *Bundle) MyReviewsHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()
	page, size := pagination(c)

	list := api.MyReviews
	if account.Role.IsTechnician() {
		list = api.MyTechnicianReviews
	}
	listed, err := list(c.Request.Context(), page, size)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, listed)
}

// TechnicianReviewsHandler handles GET /api/technicians/:id/reviews, shown on
// a technician's public profile.
func (b *Bundle) TechnicianReviewsHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	page, size := pagination(c)

	id, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid technician id", c.Param("id"))
		return
	}

	listed, err := api.TechnicianReviews(c.Request.Context(), id, page, size)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, listed)
}
