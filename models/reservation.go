package models

import (
	"errors"
	"fmt"
	"time"
)

// ReservationStatus is the canonical six-state lifecycle enum. Older mobile
// builds only ever send the four-state subset, which parses the same way.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "PENDING"
	StatusConfirmed  ReservationStatus = "CONFIRMED"
	StatusRejected   ReservationStatus = "REJECTED"
	StatusInProgress ReservationStatus = "IN_PROGRESS"
	StatusCompleted  ReservationStatus = "COMPLETED"
	StatusCancelled  ReservationStatus = "CANCELLED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Reservation is the central entity: one customer, one technician, one
// service at a scheduled date and time. Status only moves through the
// lifecycle machine; the client never mutates it directly.
//
// ServiceDate is "YYYY-MM-DD"; StartTime and EndTime are "HH:MM:SS" as the
// backend serializes its local date and time values.
type Reservation struct {
	ID                 int64             `json:"id"`
	Customer           User              `json:"user"`
	Technician         Technician        `json:"technician"`
	Service            Service           `json:"service"`
	ServiceDate        string            `json:"serviceDate"`
	StartTime          string            `json:"startTime"`
	EndTime            string            `json:"endTime,omitempty"`
	Address            string            `json:"address"`
	Notes              string            `json:"notes,omitempty"`
	Status             ReservationStatus `json:"status"`
	FinalPrice         *float64          `json:"finalPrice,omitempty"`
	TechnicianBaseRate *float64          `json:"technicianBaseRate,omitempty"`
	HasReview          bool              `json:"hasReview"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// CreateReservationRequest is the booking submission body.
type CreateReservationRequest struct {
	TechnicianID int64  `json:"technicianId"`
	ServiceID    int64  `json:"serviceId"`
	ServiceDate  string `json:"serviceDate"`
	StartTime    string `json:"startTime"`
	Address      string `json:"address"`
	Notes        string `json:"notes,omitempty"`
}

// Validate enforces the pre-submission rules. An invalid booking never
// reaches the network; the error text is shown inline next to the form.
func (r CreateReservationRequest) Validate() error {
	if r.TechnicianID == 0 || r.ServiceID == 0 {
		return errors.New("technician and service are required")
	}
	if r.Address == "" {
		return errors.New("address is required")
	}
	if r.ServiceDate == "" {
		return errors.New("service date is required")
	}
	day, err := time.Parse("2006-01-02", r.ServiceDate)
	if err != nil {
		return fmt.Errorf("service date must be YYYY-MM-DD: %w", err)
	}
	if day.Before(time.Now().Truncate(24 * time.Hour)) {
		return errors.New("service date must not be in the past")
	}
	if r.StartTime == "" {
		return errors.New("start time is required")
	}
	if _, err := time.Parse("15:04", r.StartTime); err != nil {
		if _, err := time.Parse("15:04:05", r.StartTime); err != nil {
			return errors.New("start time must be HH:MM")
		}
	}
	return nil
}
