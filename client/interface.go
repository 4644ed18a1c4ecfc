package client

import (
	"context"

	"aura/models"
)

// API is the full surface the frontends consume. *Client implements it; tests
// substitute fakes.
type API interface {
	// Auth.
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error

	// Reservations.
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	Reservation(ctx context.Context, id int64) (*models.Reservation, error)
	MyReservations(ctx context.Context, page, size int) (*models.Page[models.Reservation], error)
	MyTechnicianReservations(ctx context.Context, page, size int) (*models.Page[models.Reservation], error)
	ReservationsByStatus(ctx context.Context, status models.ReservationStatus, page, size int) (*models.Page[models.Reservation], error)
	ConfirmReservation(ctx context.Context, id int64) (*models.Reservation, error)
	RejectReservation(ctx context.Context, id int64) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id int64, reason string) (*models.Reservation, error)
	CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error)

	// Payments.
	CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error)
	Payment(ctx context.Context, id int64) (*models.Payment, error)
	MyPayments(ctx context.Context, page, size int) (*models.Page[models.Payment], error)

	// Reviews.
	CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error)
	MyReviews(ctx context.Context, page, size int) (*models.Page[models.Review], error)
	TechnicianReviews(ctx context.Context, technicianID int64, page, size int) (*models.Page[models.Review], error)
	MyTechnicianReviews(ctx context.Context, page, size int) (*models.Page[models.Review], error)

	// Catalog.
	Services(ctx context.Context, page, size int) (*models.Page[models.Service], error)
	Service(ctx context.Context, id int64) (*models.Service, error)
	ServicesByCategory(ctx context.Context, category models.ServiceCategory, page, size int) (*models.Page[models.Service], error)

	// Technician-service links.
	TechnicianServiceLink(ctx context.Context, technicianID, serviceID int64) (*models.TechnicianServiceLink, error)
	LinksByTechnician(ctx context.Context, technicianID int64) ([]models.TechnicianServiceLink, error)
	LinksByService(ctx context.Context, serviceID int64) ([]models.TechnicianServiceLink, error)
	CreateLink(ctx context.Context, technicianID, serviceID int64, baseRate float64) (*models.TechnicianServiceLink, error)
	UpdateBaseRate(ctx context.Context, technicianID, serviceID int64, baseRate float64) (*models.TechnicianServiceLink, error)
}

var _ API = (*Client)(nil)
