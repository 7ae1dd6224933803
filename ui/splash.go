package ui

// splashView is the static boot screen. The router owns its
// auto-advance timer.
type splashView struct{}

func newSplashView() *splashView { return &splashView{} }

func (v *splashView) title() string { return "Next App" }

func (v *splashView) lines() []string {
	return []string{"Inicializando..."}
}

func (v *splashView) busy() bool { return true }
