package ui

// NoticeKind classifies a modal notice.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
	NoticeInfo
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient modal dialog layered above the current route.
// It never replaces the route.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Field carries an input's current value and inline validation error,
// for the login form.
type Field struct {
	Value string
	Error string
}

// Frame is one complete description of the screen, rebuilt after every
// state change. Renderers draw it however they like; the router never
// touches widgets.
type Frame struct {
	State  RouterState
	Title  string
	Lines  []string
	Busy   bool
	Fields map[string]Field
	Focus  string
	Notice *Notice
}

// Renderer consumes frames. Implementations must be cheap: a frame is
// pushed on every UI refresh.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }
