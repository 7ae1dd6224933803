package fleet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one vehicle payload of unknown shape. Consumers must go
// through the resolver functions; direct key access would miss the
// case and synonym variants the API is known to produce.
type Record map[string]any

// Ordered synonym keys per logical field. Order matters: the first key
// holding a usable value wins.
var (
	latitudeKeys  = []string{"latitud", "Latitud", "lat", "latitude", "Latitude", "y"}
	longitudeKeys = []string{"longitud", "Longitud", "lon", "lng", "longitude", "Longitude", "x"}
	locationKeys  = []string{"ubicacion", "Ubicacion", "location", "Location"}

	labelKeys = []string{
		"placas", "Placas",
		"economico", "Economico",
		"descripcion", "Descripcion",
		"nombre", "Nombre",
		"placa", "Placa", "PlacaVehiculo",
	}

	plateKeys    = []string{"placas", "Placas", "placa", "Placa", "PlacaVehiculo"}
	economicKeys = []string{"economico", "Economico"}
	brandKeys    = []string{"marca", "Marca"}
	modelKeys    = []string{"modelo", "Modelo"}
	yearKeys     = []string{"anio", "Anio"}
	colorKeys    = []string{"color", "Color"}
	clientKeys   = []string{"cliente", "Cliente"}
	odometerKeys = []string{"km", "Km"}
	imeiKeys     = []string{"imei", "IMEI"}
	imageKeys    = []string{"imagen", "Imagen"}
	idKeys       = []string{"id", "Id", "ID", "vehiculoId", "VehiculoId"}
)

// DecodeRecords parses a JSON array of vehicle payloads. A single
// object body is accepted and wrapped, since some endpoints return one
// record rather than a list.
func DecodeRecords(data []byte) ([]Record, error) {
	var list []Record
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var one Record
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []Record{one}, nil
}

// StringField probes keys in order and returns the first non-empty
// string representation.
func (r Record) StringField(keys []string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s
			}
		case float64:
			// JSON numbers decode as float64; IMEIs and ids arrive this way.
			if s == float64(int64(s)) {
				return strconv.FormatInt(int64(s), 10)
			}
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case json.Number:
			return s.String()
		}
	}
	return ""
}

// FloatField probes keys in order and returns the first value that
// parses as a number, along with whether one was found. String values
// are parsed with strconv so the result never depends on locale.
func (r Record) FloatField(keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// nested returns the first sub-object found under the location
// container synonym keys.
func (r Record) nested(keys []string) Record {
	for _, k := range keys {
		if m, ok := r[k].(map[string]any); ok && m != nil {
			return Record(m)
		}
	}
	return nil
}

// coordinate walks keys like FloatField but skips zeroes: the API
// emits 0 (or "0") for an axis it has no fix on, so a zero must fall
// through to the remaining synonym keys rather than win.
func (r Record) coordinate(keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok && f != 0 {
			return f, true
		}
	}
	return 0, false
}

// Location resolves the record's coordinates: top-level
// latitude/longitude synonyms first, then the same synonyms inside a
// nested location object. Zero is the API's sentinel for "no fix"; a record
// whose latitude or longitude resolves to zero (or nothing) everywhere
// has no location.
func (r Record) Location() (lat, lon float64, ok bool) {
	lat, latOK := r.coordinate(latitudeKeys)
	lon, lonOK := r.coordinate(longitudeKeys)
	if !latOK || !lonOK {
		if sub := r.nested(locationKeys); sub != nil {
			if !latOK {
				lat, latOK = sub.coordinate(latitudeKeys)
			}
			if !lonOK {
				lon, lonOK = sub.coordinate(longitudeKeys)
			}
		}
	}
	if !latOK || !lonOK {
		return 0, 0, false
	}
	return lat, lon, true
}

// Label resolves a display name for the record, synthesizing
// "Vehículo N" when no identifying field is present. fallbackIndex is
// zero-based.
func (r Record) Label(fallbackIndex int) string {
	if s := r.StringField(labelKeys); s != "" {
		return s
	}
	return fmt.Sprintf("Vehículo %d", fallbackIndex+1)
}

// Convenience resolvers for the card and list surfaces.

func (r Record) Plate() string    { return r.StringField(plateKeys) }
func (r Record) Economic() string { return r.StringField(economicKeys) }
func (r Record) Brand() string    { return r.StringField(brandKeys) }
func (r Record) Model() string    { return r.StringField(modelKeys) }
func (r Record) Year() string     { return r.StringField(yearKeys) }
func (r Record) Color() string    { return r.StringField(colorKeys) }
func (r Record) Client() string   { return r.StringField(clientKeys) }
func (r Record) IMEI() string     { return r.StringField(imeiKeys) }
func (r Record) Image() string    { return r.StringField(imageKeys) }
func (r Record) ID() string       { return r.StringField(idKeys) }

// Odometer returns the kilometer reading, zero when absent.
func (r Record) Odometer() float64 {
	km, _ := r.FloatField(odometerKeys)
	return km
}

// Summary builds the one-line description used by the no-coordinates
// fallback and the vehicle list: plate, economic number, brand/model
// and IMEI when present.
func (r Record) Summary() string {
	plate := r.Plate()
	if plate == "" {
		plate = "N/A"
	}
	line := "• " + plate
	if eco := r.Economic(); eco != "" {
		line += " (" + eco + ")"
	}
	if bm := strings.TrimSpace(r.Brand() + " " + r.Model()); bm != "" {
		line += " - " + bm
	}
	if imei := r.IMEI(); imei != "" {
		line += " [IMEI: " + imei + "]"
	}
	return line
}

// CardTitle builds the card header: plate plus economic number.
func (r Record) CardTitle() string {
	title := r.Plate()
	if title == "" {
		title = "N/A"
	}
	if eco := r.Economic(); eco != "" {
		title += " - " + eco
	}
	return title
}

// CardSubtitle builds the card subheader: brand, model and year.
func (r Record) CardSubtitle() string {
	sub := strings.TrimSpace(r.Brand() + " " + r.Model())
	if y := r.Year(); y != "" {
		if sub != "" {
			sub += " "
		}
		sub += "(" + y + ")"
	}
	return sub
}
