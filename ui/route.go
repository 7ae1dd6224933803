package ui

// Route is the top-level screen identity. Exactly one route is current
// at any time.
type Route int

const (
	RouteSplash Route = iota
	RouteWelcome
	RouteLogin
	RouteHome
)

func (r Route) String() string {
	switch r {
	case RouteSplash:
		return "/"
	case RouteWelcome:
		return "/welcome"
	case RouteLogin:
		return "/login"
	case RouteHome:
		return "/home"
	default:
		return "/?"
	}
}

// Tab is the Home route's nested sub-route index.
type Tab int

const (
	TabInicio Tab = iota
	TabVehiculos
	TabTablero
)

// Drawer-only destinations past the tab range.
const (
	drawerSettings = 3
	drawerLogout   = 4
)

// NavLabels are the bottom-navigation destinations, index-aligned with
// Tab. The drawer shows these plus Ajustes and Cerrar sesión.
var NavLabels = []string{"Inicio", "Vehículos", "Tablero"}

// DrawerLabels are the navigation drawer destinations.
var DrawerLabels = []string{"Inicio", "Vehículos", "Tablero", "Ajustes", "Cerrar sesión"}

// RouterState is the immutable shell snapshot replaced atomically on
// every transition. Chrome (app bar, drawer, bottom navigation) is
// attached iff Route == RouteHome, and the navigation index always
// agrees with the mounted sub-view because both live in one snapshot.
type RouterState struct {
	Route  Route
	Tab    Tab
	Chrome bool
}
