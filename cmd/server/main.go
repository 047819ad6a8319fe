package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truckfleet/internal/config"
	"truckfleet/internal/db"
	"truckfleet/internal/geocode"
	"truckfleet/internal/httpserver"
	"truckfleet/internal/service"
	"truckfleet/repository"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	log.Info("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Error("open db", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error("close db", "error", err)
		}
	}()

	users := repository.NewUserRepository(d)
	trucks := repository.NewTruckRepository(d)
	locations := repository.NewLocationRepository(d)
	orders := repository.NewOrderRepository(d)

	places := geocode.NewClient(cfg.Places.BaseURL, cfg.Places.APIKey)

	srv := httpserver.New(log, d,
		service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		service.NewUserService(users),
		service.NewTruckService(trucks),
		service.NewLocationService(locations, places),
		service.NewOrderService(orders, trucks, locations),
	)

	shutdown, err := httpserver.Start(cfg, srv)
	if err != nil {
		log.Error("start http server", "error", err)
		os.Exit(1)
	}
	log.Info("http server listening", "address", cfg.HTTP.Address)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
