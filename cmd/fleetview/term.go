package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nextapp/fleetview/ui"
)

// termRenderer prints each frame as plain text. The router owns all
// state; this is a dumb sink.
func termRenderer(w io.Writer) ui.Renderer {
	return ui.RendererFunc(func(f ui.Frame) {
		fmt.Fprintf(w, "\n== %s (%s) ==\n", f.Title, f.State.Route)
		if f.Busy {
			fmt.Fprintln(w, "[cargando]")
		}
		for _, line := range f.Lines {
			fmt.Fprintln(w, line)
		}
		for _, name := range []string{"username", "password"} {
			field, ok := f.Fields[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "> %s", field.Value)
			if field.Error != "" {
				fmt.Fprintf(w, "  (!%s)", field.Error)
			}
			fmt.Fprintln(w)
		}
		if f.Notice != nil {
			fmt.Fprintf(w, "[%s] %s: %s\n", f.Notice.Kind, f.Notice.Title, f.Notice.Message)
		}
		if f.State.Chrome {
			fmt.Fprintf(w, "tabs: %s | menú: %s\n",
				strings.Join(ui.NavLabels, " / "),
				strings.Join(ui.DrawerLabels, " / "))
		}
	})
}

// readInput translates stdin lines into router calls dispatched onto
// the UI loop.
func readInput(ctx context.Context, loop *ui.Loop, r *ui.Router, in io.Reader) {
	sc := bufio.NewScanner(in)
	var user, pass string
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(sc.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "continuar":
			loop.Dispatch(r.Continue)
		case "atras":
			loop.Dispatch(r.Back)
		case "usuario":
			user = arg
			u, p := user, pass
			loop.Dispatch(func() { r.LoginInput(u, p) })
		case "clave":
			pass = arg
			u, p := user, pass
			loop.Dispatch(func() { r.LoginInput(u, p) })
		case "entrar":
			loop.Dispatch(r.SubmitLogin)
		case "tab":
			if n, err := strconv.Atoi(arg); err == nil {
				loop.Dispatch(func() { r.Select(n) })
			}
		case "mapa":
			loop.Dispatch(r.ShowMapDetail)
		case "ubicar":
			if n, err := strconv.Atoi(arg); err == nil {
				loop.Dispatch(func() { r.LocateVehicle(n) })
			}
		case "tema":
			loop.Dispatch(r.ToggleTheme)
		case "ok":
			loop.Dispatch(r.DismissNotice)
		case "salir":
			loop.Dispatch(r.Back)
		}
	}
}
