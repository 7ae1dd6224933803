package ui

type welcomeView struct{}

func newWelcomeView() *welcomeView { return &welcomeView{} }

func (v *welcomeView) title() string { return "Bienvenido a Next App" }

func (v *welcomeView) lines() []string {
	return []string{
		"Tu entorno unificado para gestión y análisis.",
		"[Continuar]",
	}
}

func (v *welcomeView) busy() bool { return false }
