// Package config holds process configuration, read once at startup.
package config

// App carries everything main needs to wire the server.
type App struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	// ApiNinjasKey enables the geocoding lookup on listing create;
	// empty leaves it disabled.
	ApiNinjasKey string
	Env          string
}
