// Package ui owns the route-driven view lifecycle: a single scheduler
// goroutine mutates all state, route transitions replace an immutable
// RouterState snapshot, shell chrome exists exactly while the Home
// route is mounted, and background loads apply their results only
// after a still-current generation check. Rendering is delegated to a
// Renderer that consumes Frame snapshots; widget styling lives outside
// this package.
package ui
