package mapview

import (
	"fmt"

	"github.com/nextapp/fleetview/fleet"
)

// Fallback city center used when zero vehicles have coordinates
// (Mexico City).
const (
	DefaultCenterLat = 19.4326
	DefaultCenterLon = -99.1332
)

// Zoom heuristics. The spread thresholds are product constants; a
// single located vehicle gets a tighter zoom since there is no spread
// to measure.
const (
	zoomWide       = 10
	zoomMedium     = 11
	zoomClose      = 12
	zoomDefault    = 13
	zoomSingle     = 15
	spreadWide     = 0.10
	spreadMedium   = 0.05
	spreadClose    = 0.02
	markerCap      = 10
	summaryLineCap = 10
)

// Marker is a resolved, renderable point derived from one record.
type Marker struct {
	Lat   float64
	Lon   float64
	Label string
	Popup string
	Index int
}

// Viewport is the computed map center and zoom for a marker set.
type Viewport struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
}

// Result describes everything a map surface needs to render. When
// NoCoordinates is true the surface shows the summary lines instead of
// a map.
type Result struct {
	Viewport      Viewport
	Markers       []Marker
	Located       int
	Total         int
	NoCoordinates bool
	SummaryLines  []string
}

// Aggregate resolves every record's location and produces either a
// viewport with markers or the no-coordinates fallback. Markers are
// capped at the first 10 located records; when more exist a synthetic
// "Centro" marker is appended so constrained surfaces still hint at
// the overall position.
func Aggregate(records []fleet.Record) Result {
	res := Result{Total: len(records)}

	var (
		sumLat, sumLon float64
		minLat, maxLat float64
		minLon, maxLon float64
		located        int
	)

	for i, rec := range records {
		lat, lon, ok := rec.Location()
		if !ok {
			continue
		}
		if located == 0 {
			minLat, maxLat = lat, lat
			minLon, maxLon = lon, lon
		} else {
			minLat = min(minLat, lat)
			maxLat = max(maxLat, lat)
			minLon = min(minLon, lon)
			maxLon = max(maxLon, lon)
		}
		sumLat += lat
		sumLon += lon
		located++

		if len(res.Markers) < markerCap {
			res.Markers = append(res.Markers, Marker{
				Lat:   lat,
				Lon:   lon,
				Label: rec.Label(i),
				Popup: popupText(rec, i),
				Index: len(res.Markers),
			})
		}
	}
	res.Located = located

	if located == 0 {
		res.NoCoordinates = true
		res.Viewport = Viewport{CenterLat: DefaultCenterLat, CenterLon: DefaultCenterLon, Zoom: zoomDefault}
		res.SummaryLines = summaryLines(records)
		return res
	}

	center := Viewport{
		CenterLat: sumLat / float64(located),
		CenterLon: sumLon / float64(located),
		Zoom:      zoomForSpread(maxLat-minLat, maxLon-minLon, located),
	}
	res.Viewport = center

	if located > markerCap {
		res.Markers = append(res.Markers, Marker{
			Lat:   center.CenterLat,
			Lon:   center.CenterLon,
			Label: "Centro",
			Popup: fmt.Sprintf("Centro de %d vehículos", located),
			Index: len(res.Markers),
		})
	}
	return res
}

func zoomForSpread(latRange, lonRange float64, located int) int {
	if located == 1 {
		return zoomSingle
	}
	spread := max(latRange, lonRange)
	switch {
	case spread > spreadWide:
		return zoomWide
	case spread > spreadMedium:
		return zoomMedium
	case spread > spreadClose:
		return zoomClose
	default:
		return zoomDefault
	}
}

// summaryLines builds up to 10 descriptive lines for the
// no-coordinates fallback, with a "+N more" suffix when truncated.
func summaryLines(records []fleet.Record) []string {
	n := len(records)
	lines := make([]string, 0, summaryLineCap+1)
	for _, rec := range records[:min(n, summaryLineCap)] {
		lines = append(lines, rec.Summary())
	}
	if n > summaryLineCap {
		lines = append(lines, fmt.Sprintf("... y %d vehículos más", n-summaryLineCap))
	}
	return lines
}

func popupText(rec fleet.Record, idx int) string {
	text := rec.Label(idx)
	if bm := rec.CardSubtitle(); bm != "" {
		text += "<br>" + bm
	}
	return text
}
