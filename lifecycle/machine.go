// Package lifecycle owns the reservation status state machine: which status
// transitions exist, which action triggers each edge, and which side of the
// reservation (customer or technician) may trigger it. Every screen that
// renders action buttons consults this package; none re-derive the rules.
package lifecycle

import (
	"fmt"

	"aura/models"
)

// Action is a user-triggered lifecycle transition.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
)

// Actor is the side of the reservation attempting an action. Admin roles act
// as neither side and get no transition controls.
type Actor int

const (
	ActorNone Actor = iota
	ActorCustomer
	ActorTechnician
)

// ActorFor maps an account role to its side of a reservation.
func ActorFor(role models.Role) Actor {
	switch role {
	case models.RoleTechnician:
		return ActorTechnician
	case models.RoleUser:
		return ActorCustomer
	}
	return ActorNone
}

// Transition is a single allowed edge in the lifecycle state machine.
type Transition struct {
	From   models.ReservationStatus
	To     models.ReservationStatus
	Action Action
	By     []Actor
	// Implicit edges are driven by the backend, not by a client control:
	// they validate an observed status change but are never offered as an
	// available action.
	Implicit bool
}

var baseTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed, Action: ActionAccept, By: []Actor{ActorTechnician}},
	{From: models.StatusPending, To: models.StatusRejected, Action: ActionReject, By: []Actor{ActorTechnician}},
	{From: models.StatusPending, To: models.StatusCancelled, Action: ActionCancel, By: []Actor{ActorCustomer}},
	{From: models.StatusConfirmed, To: models.StatusInProgress, Action: ActionStart, By: []Actor{ActorTechnician}, Implicit: true},
	{From: models.StatusConfirmed, To: models.StatusCompleted, Action: ActionComplete, By: []Actor{ActorCustomer}},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Action: ActionCancel, By: []Actor{ActorCustomer, ActorTechnician}},
	{From: models.StatusInProgress, To: models.StatusCompleted, Action: ActionComplete, By: []Actor{ActorCustomer}},
}

// Cancelling once work has started is a policy choice, not a hard rule, so it
// lives behind a flag rather than in the base table.
var inProgressCancel = Transition{
	From: models.StatusInProgress, To: models.StatusCancelled,
	Action: ActionCancel, By: []Actor{ActorCustomer, ActorTechnician},
}

// Machine evaluates lifecycle transitions for one configured policy.
type Machine struct {
	allowCancelInProgress bool
}

// New returns a Machine. allowCancelInProgress enables the cancel edge out of
// IN_PROGRESS for both parties.
func New(allowCancelInProgress bool) *Machine {
	return &Machine{allowCancelInProgress: allowCancelInProgress}
}

func (m *Machine) transitions() []Transition {
	if !m.allowCancelInProgress {
		return baseTransitions
	}
	out := make([]Transition, len(baseTransitions), len(baseTransitions)+1)
	copy(out, baseTransitions)
	return append(out, inProgressCancel)
}

// CanTransition reports whether the lifecycle has an edge from one status to
// another, regardless of actor. Used to validate observed status changes.
func (m *Machine) CanTransition(from, to models.ReservationStatus) bool {
	for _, tr := range m.transitions() {
		if tr.From == from && tr.To == to {
			return true
		}
	}
	return false
}

// Allowed returns the actions the given role may trigger from the given
// status. Backend-driven edges are excluded: they have no client control.
func (m *Machine) Allowed(status models.ReservationStatus, role models.Role) []Action {
	actor := ActorFor(role)
	if actor == ActorNone {
		return nil
	}
	var actions []Action
	for _, tr := range m.transitions() {
		if tr.From != status || tr.Implicit {
			continue
		}
		for _, by := range tr.By {
			if by == actor {
				actions = append(actions, tr.Action)
				break
			}
		}
	}
	return actions
}

// Permits reports whether role may trigger action from status.
func (m *Machine) Permits(status models.ReservationStatus, role models.Role, action Action) bool {
	for _, a := range m.Allowed(status, role) {
		if a == action {
			return true
		}
	}
	return false
}

// Target resolves the destination status for an action, validating the actor
// first. It is the pre-flight check run before any transition request goes on
// the wire.
func (m *Machine) Target(status models.ReservationStatus, role models.Role, action Action) (models.ReservationStatus, error) {
	actor := ActorFor(role)
	for _, tr := range m.transitions() {
		if tr.From != status || tr.Action != action || tr.Implicit {
			continue
		}
		for _, by := range tr.By {
			if by == actor {
				return tr.To, nil
			}
		}
	}
	return "", &NotPermittedError{Status: status, Role: role, Action: action}
}

// NotPermittedError reports an action rejected before any network call.
type NotPermittedError struct {
	Status models.ReservationStatus
	Role   models.Role
	Action Action
}

func (e *NotPermittedError) Error() string {
	return fmt.Sprintf("lifecycle: action %q not permitted for role %s in status %s", e.Action, e.Role, e.Status)
}
