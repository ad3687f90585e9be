// Command server runs a small in-memory Glicko-2 rating service: register
// players, record games, close rating periods, read the leaderboard. It is a
// demonstration consumer of the rating package — nothing is persisted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"skillrate/pkg/logger"
	"skillrate/rating"
)

//
// ===== bootstrap =====
//

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()

	logger.Init(getenv("LOG_LEVEL", "info"))
	defer logger.Sync()

	tau := getenvFloat("GLICKO_TAU", rating.DefaultTau)
	addr := ":" + getenv("PORT", "8080")

	reg := NewRegistry(tau)
	srv := &http.Server{
		Addr:         addr,
		Handler:      Router(reg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("rating service listening", "addr", addr, "tau", tau)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
