// Package tui is the terminal frontend: login, the role-gated reservation
// list, the booking form and the complete-pay-review prompts, all driven by
// the same core packages the web frontend uses.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"aura/checkout"
	"aura/client"
	"aura/fetch"
	"aura/lifecycle"
	"aura/models"
	"aura/pricing"
	"aura/session"
	"aura/views"
)

type SessionState int

const (
	StateLogin SessionState = iota
	StateReservations
	StateBooking
	StatePayment
	StateReview
)

// listing is one fetched reservations page with its prices pre-resolved.
type listing struct {
	reservations []models.Reservation
	prices       map[int64]float64
}

type LoginFormModel struct {
	Email    string
	Password string
}

type BookingFormModel struct {
	TechnicianID string
	ServiceID    string
	ServiceDate  string
	StartTime    string
	Address      string
	Notes        string
}

type PaymentFormModel struct {
	Method models.PaymentMethod
	Skip   bool
}

type ReviewFormModel struct {
	Rating  int
	Comment string
	Skip    bool
}

type Model struct {
	api     client.API
	sess    *session.Manager
	machine *lifecycle.Machine
	log     *zap.Logger

	state    SessionState
	keys     KeyMap
	help     help.Model
	spin     spinner.Model
	loading  bool
	errText  string
	notice   string
	quitting bool
	width    int
	height   int

	// Reservation list. The fetcher discards superseded responses so a
	// refresh mid-flight never shows stale data.
	fetcher      *fetch.Coordinator[listing]
	reservations []models.Reservation
	prices       map[int64]float64
	cursor       int

	form        *huh.Form
	loginForm   *LoginFormModel
	bookingForm *BookingFormModel
	paymentForm *PaymentFormModel
	reviewForm  *ReviewFormModel

	// Active checkout chain, set after a successful complete.
	prompt *checkout.PaymentPrompt
}

// NewModel builds the TUI over an API client and session manager that have
// already been wired together.
func NewModel(api client.API, sess *session.Manager, machine *lifecycle.Machine, log *zap.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		api:     api,
		sess:    sess,
		machine: machine,
		log:     log,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spin:    sp,
		fetcher: fetch.NewCoordinator[listing](),
		prices:  map[int64]float64{},
	}

	if sess.State() == session.StateAuthenticated {
		m.state = StateReservations
	} else {
		m.state = StateLogin
		m.startLoginForm()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.state == StateLogin {
		cmds = append(cmds, m.form.Init())
	} else {
		cmds = append(cmds, m.refreshCmd(), m.awaitListing())
	}
	return tea.Batch(cmds...)
}

// role returns the authenticated account's role.
func (m Model) role() models.Role {
	account, _ := m.sess.Current()
	return account.Role
}

// listTitle names the reservation screen for the current role, routed
// through the shared view selector.
func (m Model) listTitle() string {
	if views.SelectView(m.role(), views.ViewReservations) == views.VariantTechnicianJobs {
		return "My Jobs"
	}
	return "My Bookings"
}

// newSaga builds the checkout saga with a fresh price resolver. Called per
// refresh so the rate cache lives exactly one screen session.
func (m Model) newSaga() (*checkout.Saga, *pricing.Resolver) {
	resolver := pricing.NewResolver(m.api, m.log)
	return checkout.New(m.api, m.machine, resolver, m.log), resolver
}

// actions returns the lifecycle actions offered for the selected reservation.
func (m Model) actions() []lifecycle.Action {
	if m.cursor < 0 || m.cursor >= len(m.reservations) {
		return nil
	}
	return m.machine.Allowed(m.reservations[m.cursor].Status, m.role())
}

func (m Model) hasAction(action lifecycle.Action) bool {
	for _, a := range m.actions() {
		if a == action {
			return true
		}
	}
	return false
}
