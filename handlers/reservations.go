package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aura/checkout"
	"aura/client"
	"aura/lifecycle"
	"aura/middleware"
	"aura/models"
	"aura/pricing"
	"aura/utils"
)

// ReservationView is a reservation enriched with everything the browser
// would otherwise compute: the resolved price and the actions the current
// role may take. Screens render these, they never re-derive the rules.
type ReservationView struct {
	models.Reservation
	ResolvedPrice float64            `json:"resolvedPrice"`
	Actions       []lifecycle.Action `json:"actions"`
}

func (b *Bundle) reservationView(res *models.Reservation, price float64, role models.Role) ReservationView {
	return ReservationView{
		Reservation:   *res,
		ResolvedPrice: price,
		Actions:       b.Machine.Allowed(res.Status, role),
	}
}

// newSaga builds the per-request checkout saga. The price resolver's cache is
// per request on purpose: it is a screen-lifetime N+1 guard, not shared state.
func (b *Bundle) newSaga(api client.API) (*checkout.Saga, *pricing.Resolver) {
	resolver := pricing.NewResolver(api, b.Log)
	return checkout.New(api, b.Machine, resolver, b.Log), resolver
}

// ListReservationsHandler handles GET /api/reservations. Technicians get
// their assigned jobs, everyone else their bookings; an optional ?status=
// filters server-side.
func (b *Bundle) ListReservationsHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()
	page, size := pagination(c)

	var (
		listed *models.Page[models.Reservation]
		err    error
	)
	if raw := c.Query("status"); raw != "" {
		status := models.ReservationStatus(raw)
		if !status.Valid() {
			utils.JSONError(c, http.StatusBadRequest, "invalid status", raw)
			return
		}
		listed, err = api.ReservationsByStatus(c.Request.Context(), status, page, size)
	} else if account.Role.IsTechnician() {
		listed, err = api.MyTechnicianReservations(c.Request.Context(), page, size)
	} else {
		listed, err = api.MyReservations(c.Request.Context(), page, size)
	}
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}

	_, resolver := b.newSaga(api)
	prices := resolver.ResolveAll(c.Request.Context(), listed.Content)

	views := make([]ReservationView, 0, len(listed.Content))
	for i := range listed.Content {
		res := &listed.Content[i]
		views = append(views, b.reservationView(res, prices[res.ID], account.Role))
	}
	c.JSON(http.StatusOK, gin.H{
		"content":       views,
		"totalElements": listed.TotalElements,
		"totalPages":    listed.TotalPages,
		"size":          listed.Size,
		"number":        listed.Number,
	})
}

// GetReservationHandler handles GET /api/reservations/:id.
func (b *Bundle) GetReservationHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()

	id, err := pathID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id", c.Param("id"))
		return
	}

	res, err := api.Reservation(c.Request.Context(), id)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	_, resolver := b.newSaga(api)
	c.JSON(http.StatusOK, b.reservationView(res, resolver.Resolve(c.Request.Context(), res), account.Role))
}

// CreateReservationHandler handles POST /api/reservations. Validation runs
// here; an invalid booking never reaches the backend.
func (b *Bundle) CreateReservationHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()

	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking", err.Error())
		return
	}

	res, err := api.CreateReservation(c.Request.Context(), req)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	_, resolver := b.newSaga(api)
	c.JSON(http.StatusCreated, b.reservationView(res, resolver.Resolve(c.Request.Context(), res), account.Role))
}

// TransitionHandler handles PATCH /api/reservations/:id/:action for accept,
// reject and cancel. Complete has its own handler because it opens checkout.
func (b *Bundle) TransitionHandler(action lifecycle.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := middleware.APIFrom(c)
		account, _ := middleware.ManagerFrom(c).Current()

		id, err := pathID(c)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid reservation id", c.Param("id"))
			return
		}

		var body struct {
			Reason string `json:"reason"`
		}
		if action == lifecycle.ActionCancel && c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
				return
			}
		}

		res, err := api.Reservation(c.Request.Context(), id)
		if err != nil {
			writeAPIError(c, b.Log, err)
			return
		}

		saga, resolver := b.newSaga(api)
		updated, err := saga.Transition(c.Request.Context(), res, account.Role, action, body.Reason)
		if err != nil {
			b.writeTransitionError(c, err, account.Role, resolver)
			return
		}
		c.JSON(http.StatusOK, b.reservationView(updated, resolver.Resolve(c.Request.Context(), updated), account.Role))
	}
}

// writeTransitionError returns a conflict with the resynced reservation when
// the backend refused a stale transition, so the browser can rebind in place.
func (b *Bundle) writeTransitionError(c *gin.Context, err error, role models.Role, resolver *pricing.Resolver) {
	var se *checkout.StaleError
	if errors.As(err, &se) {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "stale reservation",
			"message":     client.Message(se.Cause),
			"reservation": b.reservationView(se.Fresh, resolver.Resolve(c.Request.Context(), se.Fresh), role),
		})
		return
	}
	writeAPIError(c, b.Log, err)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return page, size
}
