package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Location is a geographic point with a human-readable address, persisted as
// JSONB.
type Location struct {
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
	Address string  `json:"address,omitempty"`
}

// Value marshals the location into JSON for Postgres.
func (l Location) Value() (driver.Value, error) {
	buf, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the location.
func (l *Location) Scan(value interface{}) error {
	if value == nil {
		*l = Location{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("location: unsupported scan type %T", value)
	}

	var result Location
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*l = result
	return nil
}

// IsZero reports whether the location carries no coordinates and no address.
func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0 && l.Address == ""
}
