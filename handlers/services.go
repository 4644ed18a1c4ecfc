package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aura/middleware"
	"aura/models"
	"aura/utils"
)

// ListServicesHandler handles GET /api/services, optionally filtered with
// ?category=.
func (b *Bundle) ListServicesHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	page, size := pagination(c)

	if raw := c.Query("category"); raw != "" {
		listed, err := api.ServicesByCategory(c.Request.Context(), models.ServiceCategory(raw), page, size)
		if err != nil {
			writeAPIError(c, b.Log, err)
			return
		}
		c.JSON(http.StatusOK, listed)
		return
	}

	listed, err := api.Services(c.Request.Context(), page, size)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, listed)
}

// GetServiceHandler handles GET /api/services/:id.
func (b *Bundle) GetServiceHandler(c *gin.Context) {
	api := middleware.APIFrom(c)

	id, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service id", c.Param("id"))
		return
	}

	service, err := api.Service(c.Request.Context(), id)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// ListCategoriesHandler handles GET /api/services/categories.
func (b *Bundle) ListCategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories()})
}

// TechnicianServicesHandler handles GET /api/technicians/:id/services: the
// services a technician offers, with their base rates.
func (b *Bundle) TechnicianServicesHandler(c *gin.Context) {
	api := middleware.APIFrom(c)

	id, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid technician id", c.Param("id"))
		return
	}

	links, err := api.LinksByTechnician(c.Request.Context(), id)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": links})
}

// ServiceTechniciansHandler handles GET /api/services/:id/technicians: who
// offers a service, used by the booking form to pick a technician.
func (b *Bundle) ServiceTechniciansHandler(c *gin.Context) {
	api := middleware.APIFrom(c)

	id, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service id", c.Param("id"))
		return
	}

	links, err := api.LinksByService(c.Request.Context(), id)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": links})
}

// OfferServiceHandler handles POST /api/technician-services. Technician only:
// opts the caller into offering a service at a base rate.
func (b *Bundle) OfferServiceHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()
	if !account.Role.IsTechnician() {
		utils.JSONError(c, http.StatusForbidden, "technician only", "only technicians manage service offerings")
		return
	}

	var req struct {
		ServiceID int64   `json:"serviceId" binding:"required"`
		BaseRate  float64 `json:"baseRate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	link, err := api.CreateLink(c.Request.Context(), account.ID, req.ServiceID, req.BaseRate)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// UpdateBaseRateHandler handles PATCH /api/technician-services/:id/base-rate
// where :id is the service. Technician only.
func (b *Bundle) UpdateBaseRateHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()
	if !account.Role.IsTechnician() {
		utils.JSONError(c, http.StatusForbidden, "technician only", "only technicians manage service offerings")
		return
	}

	serviceID, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service id", c.Param("id"))
		return
	}
	baseRate, err := strconv.ParseFloat(c.Query("baseRate"), 64)
	if err != nil || baseRate <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid base rate", c.Query("baseRate"))
		return
	}

	link, err := api.UpdateBaseRate(c.Request.Context(), account.ID, serviceID, baseRate)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusOK, link)
}
