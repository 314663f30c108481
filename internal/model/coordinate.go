package model

import "fmt"

// Coordinate is an immutable geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that the coordinate lies within valid geographic ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]: %w", c.Lat, ErrInvalidCoordinate)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]: %w", c.Lng, ErrInvalidCoordinate)
	}
	return nil
}
