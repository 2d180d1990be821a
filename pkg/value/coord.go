package value

import "strconv"

// Coord is a geographic latitude/longitude pair in decimal degrees.
type Coord struct {
	lat float64
	lng float64
}

// NewCoord validates the bounds (±90 latitude, ±180 longitude) and
// creates a Coord.
func NewCoord(lat, lng float64) (Coord, error) {
	if lat < -90 || lat > 90 {
		return Coord{}, newValueError("Coord latitude must be within ±90: %v", lat)
	}
	if lng < -180 || lng > 180 {
		return Coord{}, newValueError("Coord longitude must be within ±180: %v", lng)
	}
	return Coord{lat: lat, lng: lng}, nil
}

// Lat returns the latitude in decimal degrees.
func (c Coord) Lat() float64 { return c.lat }

// Lng returns the longitude in decimal degrees.
func (c Coord) Lng() float64 { return c.lng }

// String renders the coordinate in the C(lat,lng) literal form.
func (c Coord) String() string {
	return "C(" + formatCoordPart(c.lat) + "," + formatCoordPart(c.lng) + ")"
}

// Kind returns KindCoord.
func (Coord) Kind() Kind { return KindCoord }

func (Coord) sealed() {}

func formatCoordPart(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
