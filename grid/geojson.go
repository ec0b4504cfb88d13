package grid

import (
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
)

// GeoJSON returns the grid lines in lon/lat, one LineString feature per line
// with the properties kind ("meridian" or "parallel"), value and label.
func (g *Lines) GeoJSON() (geojson.FeatureCollection, error) {
	var features geojson.FeatureCollection
	lines, err := g.Lines()
	if err != nil {
		return features, err
	}
	features.Features = make([]geojson.Feature, 0, lines.Len())
	for axis, kind := range [2]string{"meridian", "parallel"} {
		for _, line := range lines.Axis(axis) {
			ls := make(geom.LineString, len(line.Points))
			copy(ls, line.Points)
			features.Features = append(features.Features, geojson.Feature{
				Geometry: geojson.Geometry{Geometry: ls},
				Properties: map[string]interface{}{
					"kind":  kind,
					"value": line.Value,
					"label": LabelText(line.Value, axis, -1),
				},
			})
		}
	}
	return features, nil
}
