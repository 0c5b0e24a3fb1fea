package rest

import (
	"fmt"
	"net/http"
	"time"
)

func Start(port string, games gameFinder, archive resultLister) error {
	handlers := NewHandlers(games, archive)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlers.PingHandler)
	mux.HandleFunc("/game", handlers.GameHandler)
	mux.HandleFunc("/results", handlers.ResultsHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
