package enums

import (
	"fmt"
	"strings"
)

// ShipmentStatus tracks a shipment from booking to delivery.
type ShipmentStatus string

const (
	ShipmentStatusBooked    ShipmentStatus = "BOOKED"
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusAtCustoms ShipmentStatus = "AT_CUSTOMS"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusCancelled ShipmentStatus = "CANCELLED"
)

var validShipmentStatuses = []ShipmentStatus{
	ShipmentStatusBooked,
	ShipmentStatusInTransit,
	ShipmentStatusAtCustoms,
	ShipmentStatusDelivered,
	ShipmentStatusCancelled,
}

// shipmentTransitions is the directed transition graph: forward along the
// booking→delivery path, with CANCELLED reachable from any non-terminal state.
var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentStatusBooked:    {ShipmentStatusInTransit, ShipmentStatusCancelled},
	ShipmentStatusInTransit: {ShipmentStatusAtCustoms, ShipmentStatusCancelled},
	ShipmentStatusAtCustoms: {ShipmentStatusDelivered, ShipmentStatusCancelled},
	ShipmentStatusDelivered: nil,
	ShipmentStatusCancelled: nil,
}

// String implements fmt.Stringer.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShipmentStatus.
func (s ShipmentStatus) IsValid() bool {
	for _, candidate := range validShipmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s ShipmentStatus) IsTerminal() bool {
	return len(shipmentTransitions[s]) == 0 && s.IsValid()
}

// CanTransition reports whether moving from s to next is allowed.
func (s ShipmentStatus) CanTransition(next ShipmentStatus) bool {
	for _, candidate := range shipmentTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseShipmentStatus converts raw input into a ShipmentStatus, case-insensitively.
func ParseShipmentStatus(value string) (ShipmentStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validShipmentStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipment status %q", value)
}
