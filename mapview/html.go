package mapview

import (
	"fmt"
	"strings"
)

// BuildHTML renders a Result as a self-contained Leaflet page over
// OpenStreetMap tiles. The no-coordinates fallback renders the summary
// lines instead of a map so the surface is never blank.
func BuildHTML(res Result) string {
	if res.NoCoordinates {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Vehículos</title></head>\n<body>\n")
		b.WriteString("<h3>Los vehículos no tienen coordenadas disponibles</h3>\n")
		fmt.Fprintf(&b, "<p>Se encontraron %d vehículo(s) sin ubicación GPS:</p>\n<ul>\n", res.Total)
		for _, line := range res.SummaryLines {
			fmt.Fprintf(&b, "<li>%s</li>\n", htmlEscape(strings.TrimPrefix(line, "• ")))
		}
		b.WriteString("</ul>\n</body>\n</html>\n")
		return b.String()
	}

	var markers strings.Builder
	for _, m := range res.Markers {
		fmt.Fprintf(&markers, "L.marker([%g, %g]).addTo(map).bindPopup(\"%s\");\n", m.Lat, m.Lon, jsEscape(m.Popup))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <style>
        body { margin: 0; padding: 0; }
        #map { width: 100vw; height: 100vh; }
    </style>
</head>
<body>
    <div id="map"></div>
    <script>
        var map = L.map('map').setView([%g, %g], %d);
        L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
            attribution: '© OpenStreetMap contributors',
            maxZoom: 19
        }).addTo(map);
%s    </script>
</body>
</html>
`, res.Viewport.CenterLat, res.Viewport.CenterLon, res.Viewport.Zoom, markers.String())
}

func jsEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "'", `\'`, "\n", " ")
	return r.Replace(s)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
