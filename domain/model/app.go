package model

import "time"

// DefaultAppName is the app registration owning the setup flow.
const DefaultAppName = "spur"

// DefaultHomePath is the view the completion gate redirects to.
const DefaultHomePath = "/app/spur/home"

// App represents an application registration in the host platform registry.
type App struct {
	Name       string
	Label      string
	Version    string
	Configured bool
	ReloadedAt time.Time
}
