package models

import "time"

// ServiceCategory is the closed catalog taxonomy.
type ServiceCategory string

const (
	CategoryPlumbing        ServiceCategory = "PLUMBING"
	CategoryElectrical      ServiceCategory = "ELECTRICAL"
	CategoryCarpentry       ServiceCategory = "CARPENTRY"
	CategoryPainting        ServiceCategory = "PAINTING"
	CategoryCleaning        ServiceCategory = "CLEANING"
	CategoryGardening       ServiceCategory = "GARDENING"
	CategoryHVAC            ServiceCategory = "HVAC"
	CategoryApplianceRepair ServiceCategory = "APPLIANCE_REPAIR"
)

// Categories lists every valid category, in catalog order.
func Categories() []ServiceCategory {
	return []ServiceCategory{
		CategoryPlumbing,
		CategoryElectrical,
		CategoryCarpentry,
		CategoryPainting,
		CategoryCleaning,
		CategoryGardening,
		CategoryHVAC,
		CategoryApplianceRepair,
	}
}

// Service is a catalog entry. SuggestedPrice is the lowest-priority price
// signal and may be absent.
type Service struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       ServiceCategory `json:"category"`
	SuggestedPrice *float64        `json:"suggestedPrice,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TechnicianServiceLink binds a technician to a service they offer. BaseRate
// is the technician's own price for the service and beats the catalog's
// suggested price during resolution.
type TechnicianServiceLink struct {
	TechnicianID      int64   `json:"technicianId"`
	TechnicianName    string  `json:"technicianName"`
	ServiceID         int64   `json:"serviceId"`
	ServiceName       string  `json:"serviceName"`
	BaseRate          float64 `json:"baseRate"`
	TotalReservations int     `json:"totalReservations"`
}
