package geoimage

import (
	"math"

	"github.com/paulmach/orb"
)

// DemercatorX maps a Mercator unit square x coordinate to longitude in degrees.
func DemercatorX(u float64) float64 {
	return u*360.0 - 180.0
}

// DemercatorY maps a Mercator unit square y coordinate to latitude in degrees.
// The unit square's top edge (v = 0) is the north.
func DemercatorY(v float64) float64 {
	return (math.Atan(math.Exp((1.0-v*2.0)*math.Pi))*4.0/math.Pi - 1.0) * 90.0
}

// PixelToPoint returns the geographic coordinate of the top-left corner
// of pixel (x, y).
func (img *Image) PixelToPoint(x, y int) (orb.Point, error) {
	if err := img.checkPixel(x, y); err != nil {
		return orb.Point{}, err
	}
	u := float64(x)*img.pixelScale + img.x0
	v := float64(y)*img.pixelScale + img.y0
	return orb.Point{DemercatorX(u), DemercatorY(v)}, nil
}
