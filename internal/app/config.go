package app

import "net/http"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string       // data directory, e.g. $HOME/.parley
	RelayURL   string       // relay base URL, e.g. http://127.0.0.1:8080
	Iterations int          // vault KDF work factor; 0 means the default
	HTTP       *http.Client // optional; defaults to http.DefaultClient
}
