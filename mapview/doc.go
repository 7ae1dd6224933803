// Package mapview turns a set of vehicle records into a renderable map
// description: a viewport (center + zoom derived from coordinate
// spread), a capped marker list, and a structured fallback when no
// record carries coordinates. It can also materialize the description
// as a Leaflet/OpenStreetMap page and serve it locally for the map
// detail modal.
package mapview
