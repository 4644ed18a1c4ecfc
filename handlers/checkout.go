package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/checkout"
	"aura/lifecycle"
	"aura/middleware"
	"aura/models"
	"aura/utils"
)

// CompleteReservationHandler handles PATCH /api/reservations/:id/complete.
// The response carries the payment prompt: the resolved amount and the
// accepted methods, so the browser opens checkout with everything prefilled.
func (b *Bundle) CompleteReservationHandler(c *gin.Context) {
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

	saga, resolver := b.newSaga(api)
	prompt, err := saga.Complete(c.Request.Context(), res, account.Role)
	if err != nil {
		b.writeTransitionError(c, err, account.Role, resolver)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reservation":    b.reservationView(prompt.Reservation, prompt.Amount, account.Role),
		"amount":         prompt.Amount,
		"paymentMethods": prompt.Methods,
	})
}

// CreatePaymentHandler handles POST /api/checkout/payments. A failure leaves
// the reservation in the pending-payments listing for a later retry; complete
// is never re-run.
func (b *Bundle) CreatePaymentHandler(c *gin.Context) {
	api := middleware.APIFrom(c)

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	saga, _ := b.newSaga(api)
	payment, err := saga.Pay(c.Request.Context(), req.ReservationID, req.Amount, req.PaymentMethod)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// CreateReviewHandler handles POST /api/checkout/reviews.
func (b *Bundle) CreateReviewHandler(c *gin.Context) {
	api := middleware.APIFrom(c)

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid review", err.Error())
		return
	}

	saga, _ := b.newSaga(api)
	review, err := saga.Review(c.Request.Context(), req.ReservationID, req.Rating, req.Comment)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// PendingPaymentsHandler handles GET /api/checkout/pending-payments.
func (b *Bundle) PendingPaymentsHandler(c *gin.Context) {
	b.pendingHandler(c, func(s *checkout.Saga, page, size int) ([]models.Reservation, error) {
		return s.PendingPayments(c.Request.Context(), page, size)
	})
}

// PendingReviewsHandler handles GET /api/checkout/pending-reviews.
func (b *Bundle) PendingReviewsHandler(c *gin.Context) {
	b.pendingHandler(c, func(s *checkout.Saga, page, size int) ([]models.Reservation, error) {
		return s.PendingReviews(c.Request.Context(), page, size)
	})
}

func (b *Bundle) pendingHandler(c *gin.Context, list func(*checkout.Saga, int, int) ([]models.Reservation, error)) {
	api := middleware.APIFrom(c)
	account, _ := middleware.ManagerFrom(c).Current()
	page, size := pagination(c)

	saga, resolver := b.newSaga(api)
	reservations, err := list(saga, page, size)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}

	prices := resolver.ResolveAll(c.Request.Context(), reservations)
	views := make([]ReservationView, 0, len(reservations))
	for i := range reservations {
		res := &reservations[i]
		view := b.reservationView(res, prices[res.ID], account.Role)
		view.Actions = []lifecycle.Action{}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"content": views})
}
