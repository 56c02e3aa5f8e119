package techrecord

import "strings"

// VehicleType discriminates the technical record variant.
type VehicleType string

const (
	VehicleTypeTrailer VehicleType = "trl"
	VehicleTypeHGV     VehicleType = "hgv"
	VehicleTypePSV     VehicleType = "psv"
)

// Record is the flattened technical record attached to a letter request.
// Field availability depends on the vehicle type: trailers carry a trailer
// id, powered vehicles do not.
type Record struct {
	VehicleType        VehicleType `json:"techRecord_vehicleType"`
	VIN                string      `json:"vin"`
	TrailerID          string      `json:"trailerId,omitempty"`
	ApprovalTypeNumber string      `json:"techRecord_approvalTypeNumber"`
	PlateSerialNumber  string      `json:"techRecord_plates_plateSerialNumber"`
}

// MissingFieldError reports a field the current variant requires but does
// not carry.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return "technical record missing required field: " + e.Field
}

// Common extracts the fields every document kind needs.
type Common struct {
	VIN                string
	ApprovalTypeNumber string
	PlateSerialNumber  string
}

// Common returns the variant-independent subset of the record.
func (r Record) Common() (Common, error) {
	if strings.TrimSpace(r.VIN) == "" {
		return Common{}, MissingFieldError{Field: "vin"}
	}
	return Common{
		VIN:                r.VIN,
		ApprovalTypeNumber: r.ApprovalTypeNumber,
		PlateSerialNumber:  r.PlateSerialNumber,
	}, nil
}

// RequireTrailerID returns the trailer identifier for trailer records.
func (r Record) RequireTrailerID() (string, error) {
	if r.VehicleType != VehicleTypeTrailer || strings.TrimSpace(r.TrailerID) == "" {
		return "", MissingFieldError{Field: "trailerId"}
	}
	return r.TrailerID, nil
}
