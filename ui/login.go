package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nextapp/fleetview/api"
	"github.com/nextapp/fleetview/session"
)

const genericLoginError = "No fue posible iniciar sesión. Verifica tus datos."

// loginView is the login screen's controller: local validation, busy
// state, the async auth call, and session persistence before the Home
// transition.
type loginView struct {
	r *Router

	user, pass       string
	userErr, passErr string
	focusField       string
	loading          bool
}

func newLoginView(r *Router) *loginView {
	return &loginView{r: r, focusField: "username"}
}

func (v *loginView) title() string { return "Iniciar sesión" }

func (v *loginView) lines() []string {
	if v.loading {
		return []string{"Entrando..."}
	}
	return []string{"[Entrar]", "[Volver]"}
}

func (v *loginView) busy() bool { return v.loading }

func (v *loginView) fields() map[string]Field {
	return map[string]Field{
		"username": {Value: v.user, Error: v.userErr},
		"password": {Value: v.pass, Error: v.passErr},
	}
}

func (v *loginView) focus() string { return v.focusField }

// LoginInput updates the form fields. Ignored while a submission is in
// flight, matching the disabled inputs of the busy state.
func (r *Router) LoginInput(user, pass string) {
	v, ok := r.view.(*loginView)
	if !ok || v.loading {
		return
	}
	v.user, v.pass = user, pass
	r.render()
}

// LoginBack returns to the Welcome screen.
func (r *Router) LoginBack() {
	if _, ok := r.view.(*loginView); !ok {
		return
	}
	r.Go(RouteWelcome)
}

// SubmitLogin runs the login flow. Validation is synchronous and
// local; no network call is attempted until both fields survive
// trimming.
func (r *Router) SubmitLogin() {
	v, ok := r.view.(*loginView)
	if !ok || v.loading {
		return
	}
	v.submit()
}

func (v *loginView) submit() {
	u := strings.TrimSpace(v.user)
	p := strings.TrimSpace(v.pass)

	v.userErr, v.passErr = "", ""

	if u == "" {
		v.userErr = "Escribe tu usuario."
		v.focusField = "username"
		v.r.render()
		return
	}
	if p == "" {
		v.passErr = "Escribe tu contraseña."
		v.focusField = "password"
		v.r.render()
		return
	}

	// Busy: inputs disabled, double submission rejected by the loading
	// flag checked in SubmitLogin.
	v.loading = true
	v.r.render()

	vc := v.r.context()
	deps := v.r.deps
	v.r.deps.exec(func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("login flow panic: %v", rec)
				vc.Apply(func() { v.finishFailure(genericLoginError) })
			}
		}()

		res, err := deps.Auth.Login(context.Background(), u, p)
		if err != nil {
			msg := api.UserMessage(err)
			if msg == "" {
				msg = genericLoginError
			}
			vc.Apply(func() { v.finishFailure(msg) })
			return
		}

		// Persist before navigating; every write is awaited here, off
		// the UI task.
		if err := persistSession(deps.Store, u, p, res.Token); err != nil {
			vc.Apply(func() { v.finishFailure(fmt.Sprintf("Sin conexión (%v)", err)) })
			return
		}

		vc.Apply(func() { v.finishSuccess(u) })
	})
}

func persistSession(store session.Store, user, pass, token string) error {
	ctx := context.Background()
	if err := store.Set(ctx, session.KeyUserName, user); err != nil {
		return err
	}
	if err := store.Set(ctx, session.KeyPassword, pass); err != nil {
		return err
	}
	if token != "" {
		if err := store.Set(ctx, session.KeyToken, token); err != nil {
			return err
		}
	}
	return nil
}

// finishSuccess restores the non-busy state without clearing the
// fields and surfaces the transient success notice. Home is entered on
// the notice's dismissal or once the grace delay elapses, whichever
// comes first.
func (v *loginView) finishSuccess(userName string) {
	v.loading = false
	v.r.userName = userName
	v.r.ShowNotice(NoticeSuccess, "Éxito", "Sesión iniciada", v.r.enterHome)
	v.r.scheduleEnterHome()
}

// finishFailure restores the non-busy state, preserving both field
// values so the user can retry, and surfaces the error notice. The
// route does not change.
func (v *loginView) finishFailure(message string) {
	v.loading = false
	v.r.ShowNotice(NoticeError, "Error de autenticación", message, nil)
}

// enterHome completes the login transition. Both the dismissal
// callback and the grace timer land here; the route check makes the
// later arrival a no-op.
func (r *Router) enterHome() {
	if r.state.Route == RouteLogin {
		r.Go(RouteHome)
	}
}

func (r *Router) scheduleEnterHome() {
	time.AfterFunc(r.cfg.SuccessGrace, func() {
		r.sched.Dispatch(r.enterHome)
	})
}
