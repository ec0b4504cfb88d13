package render

import (
	"math"

	"github.com/go-spatial/tegola/dict"
)

const (
	// ConfigKeyCentralLongitude is the config key for the projection's central meridian
	ConfigKeyCentralLongitude = "central_longitude"

	// EarthRadius is the WGS84 semi-major axis in meters.
	EarthRadius = 6378137.0

	// MaxMercatorLatitude is the latitude at which mercator y equals the x extent.
	MaxMercatorLatitude = 85.0511287798066
)

func init() {
	RegisterProjection("platecarree", func(config dict.Dicter) (Projector, error) {
		var def float64
		cl, err := config.Float(ConfigKeyCentralLongitude, &def)
		if err != nil {
			return nil, err
		}
		return PlateCarree{CentralLongitude: cl}, nil
	})
	RegisterProjection("mercator", func(config dict.Dicter) (Projector, error) {
		var def float64
		cl, err := config.Float(ConfigKeyCentralLongitude, &def)
		if err != nil {
			return nil, err
		}
		return Mercator{CentralLongitude: cl}, nil
	})
}

// wrapLon brings a longitude offset back into -180..180, keeping both ends.
func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// PlateCarree is the equirectangular projection: plot units are degrees.
type PlateCarree struct {
	CentralLongitude float64
}

// Project implements Projector
func (p PlateCarree) Project(lons, lats []float64) (xs, ys []float64, err error) {
	if len(lons) != len(lats) {
		return nil, nil, ErrLengthMismatch
	}
	xs = make([]float64, len(lons))
	ys = make([]float64, len(lats))
	for i := range lons {
		xs[i] = wrapLon(lons[i] - p.CentralLongitude)
		ys[i] = lats[i]
	}
	return xs, ys, nil
}

// Mercator is the spherical mercator projection in meters.
type Mercator struct {
	CentralLongitude float64
}

// Project implements Projector. Latitudes are clamped to MaxMercatorLatitude.
func (p Mercator) Project(lons, lats []float64) (xs, ys []float64, err error) {
	if len(lons) != len(lats) {
		return nil, nil, ErrLengthMismatch
	}
	xs = make([]float64, len(lons))
	ys = make([]float64, len(lats))
	for i := range lons {
		lat := math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, lats[i]))
		xs[i] = EarthRadius * wrapLon(lons[i]-p.CentralLongitude) * math.Pi / 180
		ys[i] = EarthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	}
	return xs, ys, nil
}
