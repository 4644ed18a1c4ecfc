package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/middleware"
	"aura/views"
)

// NavigationHandler handles GET /api/navigation: the view variants the
// current role gets for every top-level screen. The browser routes on these
// instead of checking the role itself.
func (b *Bundle) NavigationHandler(c *gin.Context) {
	account, _ := middleware.ManagerFrom(c).Current()

	variants := map[views.View]views.Variant{}
	for _, view := range []views.View{
		views.ViewDashboard,
		views.ViewReservations,
		views.ViewProfile,
		views.ViewServices,
	} {
		variants[view] = views.SelectView(account.Role, view)
	}
	c.JSON(http.StatusOK, gin.H{
		"role":     account.Role,
		"variants": variants,
	})
}
