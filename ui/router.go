package ui

import (
	"context"
	"log"
	"time"

	"github.com/nextapp/fleetview/session"
)

// view is what the router mounts per route. Implementations build
// their Frame contribution from plain state; they never render
// themselves.
type view interface {
	title() string
	lines() []string
	busy() bool
}

// formView is implemented by views carrying input fields.
type formView interface {
	fields() map[string]Field
	focus() string
}

// RouterConfig carries the product constants.
type RouterConfig struct {
	SplashDelay  time.Duration
	SuccessGrace time.Duration
	OnExit       func()
}

// Router owns the current route and everything mounted under it.
// Every method must be called on the scheduler goroutine; background
// work re-enters through ViewContext.Apply.
type Router struct {
	sched    Scheduler
	renderer Renderer
	deps     Deps
	cfg      RouterConfig

	state RouterState
	stack []Route
	gen   uint64
	view  view

	notice    *Notice
	onDismiss func()

	// cleanup tears down the mounted content's background work, such
	// as a live stream. It runs before the content slot is replaced.
	cleanup func()

	userName string
}

func NewRouter(sched Scheduler, renderer Renderer, deps Deps, cfg RouterConfig) *Router {
	if cfg.SplashDelay == 0 {
		cfg.SplashDelay = time.Second
	}
	if cfg.SuccessGrace == 0 {
		cfg.SuccessGrace = 100 * time.Millisecond
	}
	if cfg.OnExit == nil {
		cfg.OnExit = func() {}
	}
	return &Router{sched: sched, renderer: renderer, deps: deps, cfg: cfg}
}

// Start performs the first navigation.
func (r *Router) Start() {
	r.Go(RouteSplash)
}

// State returns the current snapshot.
func (r *Router) State() RouterState { return r.state }

// Go pushes a route onto the history stack and mounts it.
func (r *Router) Go(route Route) {
	r.stack = append(r.stack, route)
	r.mount(route)
}

// Back prevents navigation on the entry routes, pops the history
// stack elsewhere, and exits the application on the last entry.
func (r *Router) Back() {
	switch r.state.Route {
	case RouteSplash, RouteWelcome, RouteLogin:
		return
	}
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
		r.mount(r.stack[len(r.stack)-1])
		return
	}
	r.cfg.OnExit()
}

// mount fully clears the previous view, replaces the state snapshot,
// and builds the new route's view. Bumping the generation first makes
// any in-flight background result stale.
func (r *Router) mount(route Route) {
	r.runCleanup()
	r.gen++
	r.notice = nil
	r.onDismiss = nil
	r.state = RouterState{Route: route, Tab: TabInicio, Chrome: route == RouteHome}
	switch route {
	case RouteSplash:
		r.view = newSplashView()
	case RouteWelcome:
		r.view = newWelcomeView()
	case RouteLogin:
		r.view = newLoginView(r)
	case RouteHome:
		r.view = newHomeView(r)
	}
	r.render()
	r.afterMount(route)
}

// runCleanup fires and clears the registered teardown. Safe to call
// with none registered.
func (r *Router) runCleanup() {
	if r.cleanup == nil {
		return
	}
	fn := r.cleanup
	r.cleanup = nil
	fn()
}

func (r *Router) afterMount(route Route) {
	switch route {
	case RouteSplash:
		r.scheduleSplash()
		r.restoreSession()
	}
}

// scheduleSplash arms the auto-advance timer. The callback is
// marshalled onto the scheduler and re-checks the route, so a
// transition that raced the timer suppresses it.
func (r *Router) scheduleSplash() {
	time.AfterFunc(r.cfg.SplashDelay, func() {
		r.sched.Dispatch(r.onSplashTimer)
	})
}

func (r *Router) onSplashTimer() {
	if r.state.Route != RouteSplash {
		return
	}
	r.Go(RouteWelcome)
}

// restoreSession reads the persisted token off the UI task and keeps
// the user name for the Home greeting when the token looks alive.
func (r *Router) restoreSession() {
	vc := r.context()
	r.deps.exec(func() {
		s, err := session.Load(context.Background(), r.deps.Store)
		if err != nil || s.Token == "" {
			return
		}
		name := s.UserName
		if claims, err := session.InspectToken(s.Token); err == nil {
			if claims.Expired(time.Now()) {
				log.Printf("stored token expired, ignoring session")
				return
			}
			if claims.UserName != "" {
				name = claims.UserName
			}
		}
		vc.Apply(func() {
			r.userName = name
		})
	})
}

// Continue is the Welcome screen's single action.
func (r *Router) Continue() {
	if r.state.Route != RouteWelcome {
		return
	}
	r.Go(RouteLogin)
}

// Select handles both the bottom navigation and the drawer. Tab
// changes replace the snapshot and the content slot together, so the
// highlighted index and the mounted sub-view can never disagree.
func (r *Router) Select(index int) {
	if r.state.Route != RouteHome {
		return
	}
	home, ok := r.view.(*homeView)
	if !ok {
		return
	}
	switch index {
	case int(TabInicio), int(TabVehiculos), int(TabTablero):
		r.state = RouterState{Route: RouteHome, Tab: Tab(index), Chrome: true}
		home.setTab(Tab(index))
		r.render()
	case drawerSettings:
		home.showSettings()
		r.render()
	case drawerLogout:
		r.logout()
	}
}

// Logout clears the persisted credentials and forces the Welcome
// route. The store write happens off the UI task.
func (r *Router) logout() {
	r.deps.exec(func() {
		if err := session.Clear(context.Background(), r.deps.Store); err != nil {
			log.Printf("logout: clearing session: %v", err)
		}
		r.sched.Dispatch(func() {
			r.userName = ""
			// History restarts at Welcome; the session the old
			// entries belonged to is gone.
			r.stack = nil
			r.Go(RouteWelcome)
		})
	})
}

// ShowNotice layers a modal above the current route. onDismissed runs
// after the notice is closed.
func (r *Router) ShowNotice(kind NoticeKind, title, message string, onDismissed func()) {
	r.notice = &Notice{Kind: kind, Title: title, Message: message}
	r.onDismiss = onDismissed
	r.render()
}

// DismissNotice closes the active modal and fires its callback.
func (r *Router) DismissNotice() {
	if r.notice == nil {
		return
	}
	r.notice = nil
	cb := r.onDismiss
	r.onDismiss = nil
	r.render()
	if cb != nil {
		cb()
	}
}

// Notice returns the active modal, nil when none.
func (r *Router) Notice() *Notice { return r.notice }

func (r *Router) render() {
	if r.view == nil {
		return
	}
	f := Frame{
		State: r.state,
		Title: r.view.title(),
		Lines: r.view.lines(),
		Busy:  r.view.busy(),
	}
	if fv, ok := r.view.(formView); ok {
		f.Fields = fv.fields()
		f.Focus = fv.focus()
	}
	if r.notice != nil {
		n := *r.notice
		f.Notice = &n
	}
	r.renderer.Render(f)
}

// context snapshots the current generation for a background load.
func (r *Router) context() *ViewContext {
	return &ViewContext{r: r, gen: r.gen}
}

// ViewContext guards background results against applying to a
// torn-down view.
type ViewContext struct {
	r   *Router
	gen uint64
}

// Current reports whether the originating view is still mounted. Must
// be read on the scheduler goroutine.
func (vc *ViewContext) Current() bool { return vc.gen == vc.r.gen }

// Apply marshals fn onto the scheduler, drops it silently when the
// view is gone, and refreshes the screen after it runs.
func (vc *ViewContext) Apply(fn func()) {
	vc.r.sched.Dispatch(func() {
		if !vc.Current() {
			return
		}
		fn()
		vc.r.render()
	})
}
