// Package views centralizes role-derived view selection. Every screen that
// renders differently for technicians and customers routes through SelectView;
// no screen re-derives the role check locally.
package views

import "aura/models"

// View is a logical top-level screen, independent of who is looking at it.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewReservations View = "reservations"
	ViewProfile      View = "profile"
	ViewServices     View = "services"
)

// Variant is the concrete rendering of a logical view for a given role.
type Variant string

const (
	VariantCustomerDashboard    Variant = "customer_dashboard"
	VariantTechnicianDashboard  Variant = "technician_dashboard"
	VariantCustomerBookings     Variant = "customer_bookings"
	VariantTechnicianJobs       Variant = "technician_jobs"
	VariantCustomerProfile      Variant = "customer_profile"
	VariantTechnicianProfile    Variant = "technician_profile"
	VariantServiceCatalog       Variant = "service_catalog"
	VariantTechnicianServiceMgr Variant = "technician_service_manager"
)

// SelectView maps a role and logical view to its variant. Admin roles see the
// customer variants; this client has no dedicated admin surface.
func SelectView(role models.Role, view View) Variant {
	technician := role.IsTechnician()
	switch view {
	case ViewDashboard:
		if technician {
			return VariantTechnicianDashboard
		}
		return VariantCustomerDashboard
	case ViewReservations:
		if technician {
			return VariantTechnicianJobs
		}
		return VariantCustomerBookings
	case ViewProfile:
		if technician {
			return VariantTechnicianProfile
		}
		return VariantCustomerProfile
	case ViewServices:
		if technician {
			return VariantTechnicianServiceMgr
		}
		return VariantServiceCatalog
	default:
		return VariantCustomerDashboard
	}
}
