package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nextapp/fleetview/api"
	"github.com/nextapp/fleetview/fleet"
	"github.com/nextapp/fleetview/mapview"
	"github.com/nextapp/fleetview/session"
)

const noTokenMessage = "No hay token de autenticación. Por favor, inicia sesión nuevamente."

// homeContent is the sub-view occupying Home's content slot.
type homeContent interface {
	heading() string
	lines() []string
	busy() bool
}

// homeView hosts the shell chrome and swaps tab content. A tab change
// replaces the content together with the RouterState snapshot, in one
// refresh.
type homeView struct {
	r       *Router
	content homeContent
}

func newHomeView(r *Router) *homeView {
	return &homeView{r: r, content: &inicioContent{userName: r.userName}}
}

func (h *homeView) title() string { return "Next App" }

func (h *homeView) lines() []string {
	out := []string{h.content.heading(), "---"}
	return append(out, h.content.lines()...)
}

func (h *homeView) busy() bool { return h.content.busy() }

// setTab rebuilds the content slot for the selected index. Bumping the
// generation makes any load still in flight for the previous tab
// stale.
func (h *homeView) setTab(tab Tab) {
	h.r.runCleanup()
	h.r.gen++
	switch tab {
	case TabInicio:
		h.content = &inicioContent{userName: h.r.userName}
	case TabVehiculos:
		c := &vehiclesContent{loading: true}
		h.content = c
		h.loadVehicles(c)
	case TabTablero:
		c := &dashboardContent{loading: true}
		h.content = c
		h.loadDashboard(c)
	}
}

// showSettings occupies the content slot without changing the Route or
// the tab index, mirroring the drawer's Ajustes entry.
func (h *homeView) showSettings() {
	h.r.runCleanup()
	h.r.gen++
	c := &settingsContent{}
	h.content = c
	h.loadTheme(c)
}

// --- Inicio ---

type inicioContent struct {
	userName string
}

func (c *inicioContent) heading() string { return "Inicio" }

func (c *inicioContent) lines() []string {
	if c.userName != "" {
		return []string{"Hola, " + c.userName + "."}
	}
	return []string{"Contenido de la pantalla de inicio."}
}

func (c *inicioContent) busy() bool { return false }

// --- Vehículos ---

type vehiclesContent struct {
	loading bool
	err     string
	records []fleet.Record
}

func (c *vehiclesContent) heading() string { return "Vehículos" }

func (c *vehiclesContent) lines() []string {
	switch {
	case c.loading:
		return []string{"Cargando..."}
	case c.err != "":
		return []string{"Error al cargar vehículos: " + c.err}
	case len(c.records) == 0:
		return []string{"No hay vehículos disponibles"}
	}
	out := []string{fmt.Sprintf("%d vehículo(s) encontrado(s)", len(c.records))}
	for _, rec := range c.records {
		line := rec.CardTitle()
		if sub := rec.CardSubtitle(); sub != "" {
			line += " — " + sub
		}
		out = append(out, line)
	}
	return out
}

func (c *vehiclesContent) busy() bool { return c.loading }

func (h *homeView) loadVehicles(c *vehiclesContent) {
	vc := h.r.context()
	deps := h.r.deps
	deps.exec(func() {
		token, err := deps.Store.Get(context.Background(), session.KeyToken)
		if err != nil || token == "" {
			vc.Apply(func() {
				c.loading = false
				c.err = noTokenMessage
			})
			return
		}
		records, err := deps.Vehicles.FetchVehicles(context.Background(), token)
		vc.Apply(func() {
			c.loading = false
			if err != nil {
				c.err = api.UserMessage(err)
				return
			}
			c.records = records
		})
	})
}

// --- Tablero ---

type dashboardContent struct {
	loading bool
	err     string
	source  string
	result  mapview.Result
	live    bool
}

func (c *dashboardContent) heading() string { return "Tablero" }

func (c *dashboardContent) lines() []string {
	switch {
	case c.loading:
		return []string{"Cargando..."}
	case c.err != "":
		return []string{c.err}
	}
	res := c.result
	if res.NoCoordinates {
		out := []string{
			"Los vehículos no tienen coordenadas disponibles",
			fmt.Sprintf("Se encontraron %d vehículo(s) sin ubicación GPS:", res.Total),
		}
		return append(out, res.SummaryLines...)
	}
	out := []string{fmt.Sprintf("Mapa: centro %.4f, %.4f · zoom %d (fuente: %s)",
		res.Viewport.CenterLat, res.Viewport.CenterLon, res.Viewport.Zoom, c.source)}
	if c.live {
		out = append(out, "Actualizaciones en vivo activas")
	}
	for _, m := range res.Markers {
		out = append(out, fmt.Sprintf("%s: %.5f, %.5f", m.Label, m.Lat, m.Lon))
	}
	return out
}

func (c *dashboardContent) busy() bool { return c.loading }

func (h *homeView) loadDashboard(c *dashboardContent) {
	vc := h.r.context()
	deps := h.r.deps
	deps.exec(func() {
		token, err := deps.Store.Get(context.Background(), session.KeyToken)
		if err != nil || token == "" {
			vc.Apply(func() {
				c.loading = false
				c.err = noTokenMessage
			})
			return
		}
		chain := api.SourceChain{Sources: deps.Sources}
		records, source, err := chain.Fetch(context.Background(), token)
		vc.Apply(func() {
			c.loading = false
			if err != nil {
				c.err = api.UserMessage(err)
				return
			}
			c.source = source
			c.result = mapview.Aggregate(records)
			h.publishPreview(c.result)
		})
		if err == nil {
			h.watchLive(vc, c)
		}
	})
}

// watchLive subscribes the dashboard to the optional live position
// stream. The stream's cancel is registered as the router's view
// cleanup before dialing, so leaving the tab tears the connection down
// even when the stream never delivers a batch. Registration happens on
// the scheduler; a teardown that already happened skips the dial.
func (h *homeView) watchLive(vc *ViewContext, c *dashboardContent) {
	if h.r.deps.Live == nil {
		return
	}
	h.r.sched.Dispatch(func() {
		if !vc.Current() {
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		h.r.cleanup = cancel
		go h.runLive(ctx, vc, c)
	})
}

func (h *homeView) runLive(ctx context.Context, vc *ViewContext, c *dashboardContent) {
	err := h.r.deps.Live.Run(ctx, func(records []fleet.Record) {
		h.r.sched.Dispatch(func() {
			if !vc.Current() {
				return
			}
			c.live = true
			c.result = mapview.Aggregate(records)
			c.source = "live"
			h.publishPreview(c.result)
			h.r.render()
		})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("live stream ended: %v", err)
	}
}

func (h *homeView) publishPreview(res mapview.Result) {
	if h.r.deps.Preview == nil {
		return
	}
	h.r.deps.Preview.Publish(mapview.BuildHTML(res))
}

// ShowMapDetail opens the map detail modal for the dashboard,
// pointing at the local preview of the last published map.
func (r *Router) ShowMapDetail() {
	home, ok := r.view.(*homeView)
	if !ok {
		return
	}
	c, ok := home.content.(*dashboardContent)
	if !ok || c.loading {
		return
	}
	if r.deps.Preview == nil {
		r.ShowNotice(NoticeInfo, "Mapa", "Vista previa de mapa no disponible", nil)
		return
	}
	home.publishPreview(c.result)
	r.ShowNotice(NoticeInfo, "Mapa", "Mapa disponible en "+r.deps.Preview.URL(), nil)
}

// LocateVehicle resolves one roster vehicle's current position through
// the per-vehicle endpoint chain and surfaces it as an info notice.
func (r *Router) LocateVehicle(index int) {
	home, ok := r.view.(*homeView)
	if !ok {
		return
	}
	c, ok := home.content.(*vehiclesContent)
	if !ok || index < 0 || index >= len(c.records) {
		return
	}
	rec := c.records[index]
	label := rec.Label(index)

	vc := r.context()
	deps := r.deps
	deps.exec(func() {
		token, err := deps.Store.Get(context.Background(), session.KeyToken)
		if err != nil || token == "" {
			vc.Apply(func() { r.ShowNotice(NoticeError, "Ubicación", noTokenMessage, nil) })
			return
		}
		loc, err := deps.Vehicles.FetchVehicleLocation(context.Background(), token, rec.ID(), rec.IMEI())
		vc.Apply(func() {
			if err != nil {
				r.ShowNotice(NoticeError, "Ubicación", api.UserMessage(err), nil)
				return
			}
			lat, lon, ok := loc.Location()
			if !ok {
				r.ShowNotice(NoticeInfo, "Ubicación", label+": sin ubicación GPS", nil)
				return
			}
			r.ShowNotice(NoticeInfo, "Ubicación", fmt.Sprintf("%s: %.5f, %.5f", label, lat, lon), nil)
		})
	})
}

// --- Ajustes ---

type settingsContent struct {
	dark bool
}

func (c *settingsContent) heading() string { return "Ajustes" }

func (c *settingsContent) lines() []string {
	mode := "claro"
	if c.dark {
		mode = "oscuro"
	}
	return []string{"Preferencias generales", "Tema: " + mode}
}

func (c *settingsContent) busy() bool { return false }

func (h *homeView) loadTheme(c *settingsContent) {
	vc := h.r.context()
	deps := h.r.deps
	deps.exec(func() {
		mode, err := deps.Store.Get(context.Background(), session.KeyThemeMode)
		if err != nil {
			return
		}
		vc.Apply(func() { c.dark = mode == "dark" })
	})
}

// ToggleTheme flips the persisted theme preference from the settings
// screen.
func (r *Router) ToggleTheme() {
	home, ok := r.view.(*homeView)
	if !ok {
		return
	}
	c, ok := home.content.(*settingsContent)
	if !ok {
		return
	}
	c.dark = !c.dark
	mode := "light"
	if c.dark {
		mode = "dark"
	}
	r.render()
	r.deps.exec(func() {
		if err := r.deps.Store.Set(context.Background(), session.KeyThemeMode, mode); err != nil {
			log.Printf("settings: persisting theme: %v", err)
		}
	})
}
