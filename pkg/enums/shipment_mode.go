package enums

import (
	"fmt"
	"strings"
)

// ShipmentMode is the transport leg used for a shipment.
type ShipmentMode string

const (
	ShipmentModeAir  ShipmentMode = "AIR"
	ShipmentModeSea  ShipmentMode = "SEA"
	ShipmentModeRoad ShipmentMode = "ROAD"
	ShipmentModeRail ShipmentMode = "RAIL"
)

var validShipmentModes = []ShipmentMode{
	ShipmentModeAir,
	ShipmentModeSea,
	ShipmentModeRoad,
	ShipmentModeRail,
}

// String implements fmt.Stringer.
func (m ShipmentMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ShipmentMode.
func (m ShipmentMode) IsValid() bool {
	for _, candidate := range validShipmentModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseShipmentMode converts raw input into a ShipmentMode. Input is
// case-insensitive; a blank value falls back to SEA.
func ParseShipmentMode(value string) (ShipmentMode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return ShipmentModeSea, nil
	}
	for _, candidate := range validShipmentModes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipment mode %q", value)
}
