package valueobjects

import "fmt"

// PartLocation tells where a removed part currently is.
type PartLocation string

const (
	LocationWorkshop       PartLocation = "workshop"
	LocationExternalRepair PartLocation = "external_repair"
	LocationReturned       PartLocation = "returned"
)

func (l PartLocation) String() string {
	return string(l)
}

func (l PartLocation) IsValid() bool {
	switch l {
	case LocationWorkshop, LocationExternalRepair, LocationReturned:
		return true
	}
	return false
}

// NewPartLocation parses l, defaulting an empty value to workshop.
func NewPartLocation(l string) (PartLocation, error) {
	if l == "" {
		return LocationWorkshop, nil
	}
	loc := PartLocation(l)
	if !loc.IsValid() {
		return "", fmt.Errorf("invalid part location: %s", l)
	}
	return loc, nil
}

const (
	PartStatusRemoved  = "removed"
	PartStatusInRepair = "in_repair"
	PartStatusRepaired = "repaired"
	PartStatusReturned = "returned"
)
