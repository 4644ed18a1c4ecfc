package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aura/checkout"
	"aura/fetch"
	"aura/lifecycle"
	"aura/models"
)

const requestTimeout = 15 * time.Second

type listingMsg fetch.Result[listing]

type authMsg struct{ err error }

type transitionMsg struct {
	prompt *checkout.PaymentPrompt
	err    error
}

type bookedMsg struct {
	reservation *models.Reservation
	err         error
}

type paidMsg struct{ err error }

type reviewedMsg struct{ err error }

// refreshCmd issues a list fetch through the coordinator. An earlier in-flight
// fetch is cancelled; its late result is discarded, not rendered.
func (m Model) refreshCmd() tea.Cmd {
	role := m.role()
	_, resolver := m.newSaga()
	m.fetcher.Go(context.Background(), func(ctx context.Context) (listing, error) {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		var (
			page *models.Page[models.Reservation]
			err  error
		)
		if role.IsTechnician() {
			page, err = m.api.MyTechnicianReservations(ctx, 0, 50)
		} else {
			page, err = m.api.MyReservations(ctx, 0, 50)
		}
		if err != nil {
			return listing{}, err
		}
		return listing{
			reservations: page.Content,
			prices:       resolver.ResolveAll(ctx, page.Content),
		}, nil
	})
	return nil
}

// awaitListing blocks on the coordinator until the newest fetch publishes.
func (m Model) awaitListing() tea.Cmd {
	return func() tea.Msg {
		return listingMsg(<-m.fetcher.Updates())
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		res, err := m.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
		if err != nil {
			return authMsg{err: err}
		}
		return authMsg{err: m.sess.Establish(ctx, res)}
	}
}

func (m Model) bookCmd(req models.CreateReservationRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reservation, err := m.api.CreateReservation(ctx, req)
		return bookedMsg{reservation: reservation, err: err}
	}
}

// transitionCmd runs one lifecycle action. Complete goes through the saga's
// Complete so a payment prompt comes back with the amount resolved.
func (m Model) transitionCmd(res models.Reservation, action lifecycle.Action) tea.Cmd {
	role := m.role()
	saga, _ := m.newSaga()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if action == lifecycle.ActionComplete {
			prompt, err := saga.Complete(ctx, &res, role)
			return transitionMsg{prompt: prompt, err: err}
		}
		_, err := saga.Transition(ctx, &res, role, action, "")
		return transitionMsg{err: err}
	}
}

func (m Model) payCmd(reservationID int64, amount float64, method models.PaymentMethod) tea.Cmd {
	saga, _ := m.newSaga()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_, err := saga.Pay(ctx, reservationID, amount, method)
		return paidMsg{err: err}
	}
}

func (m Model) reviewCmd(reservationID int64, rating int, comment string) tea.Cmd {
	saga, _ := m.newSaga()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_, err := saga.Review(ctx, reservationID, rating, comment)
		return reviewedMsg{err: err}
	}
}
