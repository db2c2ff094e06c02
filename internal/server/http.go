package server

import (
	"net/http"
	"time"
)

// NewHTTPServer creates the API's HTTP server around the router
func NewHTTPServer(config Config, handler http.Handler) *http.Server {
	return newServer(config.ServerAddress, handler)
}

// NewWebHTTPServer creates the front end's HTTP server around its router
func NewWebHTTPServer(config WebConfig, handler http.Handler) *http.Server {
	return newServer(config.WebAddress, handler)
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
