package enums

import (
	"fmt"
	"strings"
)

// ContractParty identifies which side of a contract is signing.
type ContractParty string

const (
	ContractPartyBuyer    ContractParty = "buyer"
	ContractPartySupplier ContractParty = "supplier"
)

var validContractParties = []ContractParty{
	ContractPartyBuyer,
	ContractPartySupplier,
}

// String implements fmt.Stringer.
func (p ContractParty) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ContractParty.
func (p ContractParty) IsValid() bool {
	for _, candidate := range validContractParties {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseContractParty converts raw input into a ContractParty, case-insensitively.
func ParseContractParty(value string) (ContractParty, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validContractParties {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("contract signing role must be buyer or supplier, got %q", value)
}
