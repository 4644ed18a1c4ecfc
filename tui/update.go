package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"aura/checkout"
	"aura/client"
	"aura/lifecycle"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case listingMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = fmt.Sprintf("load failed: %s (r to retry)", client.Message(msg.Err))
			return m, m.awaitListing()
		}
		m.errText = ""
		m.reservations = msg.Value.reservations
		m.prices = msg.Value.prices
		if m.cursor >= len(m.reservations) {
			m.cursor = max(len(m.reservations)-1, 0)
		}
		return m, m.awaitListing()

	case authMsg:
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			m.startLoginForm()
			return m, m.form.Init()
		}
		m.errText = ""
		m.state = StateReservations
		m.loading = true
		return m, tea.Batch(m.refreshCmd(), m.awaitListing())

	case bookedMsg:
		if msg.err != nil {
			m.errText = client.Message(msg.err)
		} else {
			m.notice = fmt.Sprintf("reservation #%d requested", msg.reservation.ID)
		}
		m.state = StateReservations
		m.loading = true
		return m, m.refreshCmd()

	case transitionMsg:
		return m.handleTransition(msg)

	case paidMsg:
		if msg.err != nil {
			// The reservation stays COMPLETED and pending payment; nothing
			// to roll back, the user retries from the list.
			m.errText = fmt.Sprintf("payment failed: %s", client.Message(msg.err))
			m.state = StateReservations
			m.loading = true
			return m, m.refreshCmd()
		}
		m.notice = "payment received"
		m.state = StateReview
		m.startReviewForm()
		return m, m.form.Init()

	case reviewedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("review failed: %s", client.Message(msg.err))
		} else {
			m.notice = "thanks for the review"
		}
		m.prompt = nil
		m.state = StateReservations
		m.loading = true
		return m, m.refreshCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.state == StateReservations {
			m.quitting = true
			m.fetcher.Stop()
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateLogin, StateBooking, StatePayment, StateReview:
		return m.updateForm(msg)
	case StateReservations:
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) handleTransition(msg transitionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var stale *checkout.StaleError
		var notPermitted *lifecycle.NotPermittedError
		switch {
		case errors.As(msg.err, &stale):
			// Someone moved the reservation first; resync and rebind.
			m.errText = fmt.Sprintf("out of date: %s", client.Message(stale.Cause))
		case errors.As(msg.err, &notPermitted):
			m.errText = notPermitted.Error()
			return m, nil
		default:
			m.errText = client.Message(msg.err)
		}
		m.loading = true
		return m, m.refreshCmd()
	}

	if msg.prompt != nil {
		m.prompt = msg.prompt
		m.state = StatePayment
		m.startPaymentForm(msg.prompt.Amount)
		return m, m.form.Init()
	}

	m.notice = "done"
	m.loading = true
	return m, m.refreshCmd()
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.reservations)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Refresh):
		m.loading = true
		m.notice = ""
		return m, m.refreshCmd()
	case key.Matches(keyMsg, m.keys.Book):
		if !m.role().IsTechnician() {
			m.state = StateBooking
			m.startBookingForm()
			return m, m.form.Init()
		}
	case key.Matches(keyMsg, m.keys.Accept):
		return m.runAction(lifecycle.ActionAccept)
	case key.Matches(keyMsg, m.keys.Reject):
		return m.runAction(lifecycle.ActionReject)
	case key.Matches(keyMsg, m.keys.Cancel):
		return m.runAction(lifecycle.ActionCancel)
	case key.Matches(keyMsg, m.keys.Complete):
		return m.runAction(lifecycle.ActionComplete)
	}
	return m, nil
}

// runAction dispatches a lifecycle action for the selected row. Actions not
// offered for this status and role are ignored before any request is made.
func (m Model) runAction(action lifecycle.Action) (tea.Model, tea.Cmd) {
	if !m.hasAction(action) {
		return m, nil
	}
	m.loading = true
	m.notice = ""
	return m, m.transitionCmd(m.reservations[m.cursor], action)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		if m.state == StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = StateReservations
		m.loading = true
		return m, m.refreshCmd()
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		m.loading = true
		return m, m.loginCmd(m.loginForm.Email, m.loginForm.Password)

	case StateBooking:
		req, err := m.bookingForm.bookingRequest()
		if err != nil {
			// Invalid bookings never go on the wire.
			m.errText = err.Error()
			m.startBookingForm()
			return m, m.form.Init()
		}
		m.loading = true
		return m, m.bookCmd(req)

	case StatePayment:
		if m.paymentForm.Skip {
			// Deferred: the reservation stays in pending payments. The
			// review prompt still follows, per the checkout order.
			m.notice = "payment deferred"
			m.state = StateReview
			m.startReviewForm()
			return m, m.form.Init()
		}
		m.loading = true
		return m, m.payCmd(m.prompt.Reservation.ID, m.prompt.Amount, m.paymentForm.Method)

	case StateReview:
		if m.reviewForm.Skip {
			m.prompt = nil
			m.state = StateReservations
			m.loading = true
			return m, m.refreshCmd()
		}
		m.loading = true
		return m, m.reviewCmd(m.prompt.Reservation.ID, m.reviewForm.Rating, m.reviewForm.Comment)
	}
	return m, nil
}
