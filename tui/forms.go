package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"aura/models"
)

func (m *Model) startLoginForm() {
	m.loginForm = &LoginFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.loginForm.Email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter a valid email")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.loginForm.Password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	)
}

func (m *Model) startBookingForm() {
	m.bookingForm = &BookingFormModel{}
	positiveID := func(s string) error {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil || i <= 0 {
			return errors.New("enter a numeric id")
		}
		return nil
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service ID").
				Value(&m.bookingForm.ServiceID).
				Validate(positiveID),
			huh.NewInput().
				Title("Technician ID").
				Value(&m.bookingForm.TechnicianID).
				Validate(positiveID),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&m.bookingForm.ServiceDate),
			huh.NewInput().
				Title("Start time (HH:MM)").
				Value(&m.bookingForm.StartTime),
			huh.NewInput().
				Title("Address").
				Value(&m.bookingForm.Address),
			huh.NewInput().
				Title("Notes").
				Value(&m.bookingForm.Notes),
		),
	)
}

func (m *Model) startPaymentForm(amount float64) {
	m.paymentForm = &PaymentFormModel{Method: models.MethodCash}

	options := make([]huh.Option[models.PaymentMethod], 0, len(models.PaymentMethods()))
	for _, method := range models.PaymentMethods() {
		options = append(options, huh.NewOption(string(method), method))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.PaymentMethod]().
				Title(fmt.Sprintf("Pay S/ %.2f with", amount)).
				Options(options...).
				Value(&m.paymentForm.Method),
			huh.NewConfirm().
				Title("Pay later instead?").
				Affirmative("Pay later").
				Negative("Pay now").
				Value(&m.paymentForm.Skip),
		),
	)
}

func (m *Model) startReviewForm() {
	m.reviewForm = &ReviewFormModel{Rating: 5}

	ratings := make([]huh.Option[int], 0, 5)
	for r := 5; r >= 1; r-- {
		ratings = append(ratings, huh.NewOption(strings.Repeat("★", r), r))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rating").
				Options(ratings...).
				Value(&m.reviewForm.Rating),
			huh.NewInput().
				Title("Comment").
				Value(&m.reviewForm.Comment),
			huh.NewConfirm().
				Title("Skip the review?").
				Affirmative("Skip").
				Negative("Submit").
				Value(&m.reviewForm.Skip),
		),
	)
}

// bookingRequest converts the form into the submission body. The request's
// own Validate runs before anything goes on the wire.
func (f *BookingFormModel) bookingRequest() (models.CreateReservationRequest, error) {
	technicianID, _ := strconv.ParseInt(f.TechnicianID, 10, 64)
	serviceID, _ := strconv.ParseInt(f.ServiceID, 10, 64)
	req := models.CreateReservationRequest{
		TechnicianID: technicianID,
		ServiceID:    serviceID,
		ServiceDate:  strings.TrimSpace(f.ServiceDate),
		StartTime:    strings.TrimSpace(f.StartTime),
		Address:      strings.TrimSpace(f.Address),
		Notes:        strings.TrimSpace(f.Notes),
	}
	return req, req.Validate()
}
