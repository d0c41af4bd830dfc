// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityStaff                       // Valid identity provider session required
)

// Route names registered in internal/api/http/router.go
const (
	RouteHealth             = "health"
	RouteSubmitMessage      = "messages.submit"
	RouteListCabins         = "cabins.list"
	RouteListReservations   = "reservations.list"
	RouteGetReservation     = "reservations.get"
	RouteCreateReservation  = "reservations.create"
	RouteUpdateReservation  = "reservations.update"
	RouteUpdateStatus       = "reservations.status"
	RouteCancelReservation  = "reservations.cancel"
	RouteCheckAvailability  = "availability.check"
	RouteListBlocks         = "availability.blocks"
	RouteListPayments       = "payments.list"
	RouteReservationPayment = "reservations.payments"
	RouteCreatePayment      = "payments.create"
	RouteDeletePayment      = "payments.delete"
	RouteListMessages       = "messages.list"
	RouteMarkMessageRead    = "messages.read"
	RouteArchiveMessage     = "messages.archive"
	RouteAlerts             = "alerts"
	RouteDashboard          = "dashboard"
	RouteCalendar           = "calendar"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public site
	RouteHealth:        SecurityPublic,
	RouteSubmitMessage: SecurityPublic,

	// Back office
	RouteListCabins:         SecurityStaff,
	RouteListReservations:   SecurityStaff,
	RouteGetReservation:     SecurityStaff,
	RouteCreateReservation:  SecurityStaff,
	RouteUpdateReservation:  SecurityStaff,
	RouteUpdateStatus:       SecurityStaff,
	RouteCancelReservation:  SecurityStaff,
	RouteCheckAvailability:  SecurityStaff,
	RouteListBlocks:         SecurityStaff,
	RouteListPayments:       SecurityStaff,
	RouteReservationPayment: SecurityStaff,
	RouteCreatePayment:      SecurityStaff,
	RouteDeletePayment:      SecurityStaff,
	RouteListMessages:       SecurityStaff,
	RouteMarkMessageRead:    SecurityStaff,
	RouteArchiveMessage:     SecurityStaff,
	RouteAlerts:             SecurityStaff,
	RouteDashboard:          SecurityStaff,
	RouteCalendar:           SecurityStaff,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityStaff
}
