package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/auth"
	"github.com/lifelinkhq/donor-portal/geo"
	"github.com/lifelinkhq/donor-portal/internal/config"
	"github.com/lifelinkhq/donor-portal/server"
	"github.com/lifelinkhq/donor-portal/session"
	boltkv "github.com/lifelinkhq/donor-portal/session/kv/bolt"
	memorykv "github.com/lifelinkhq/donor-portal/session/kv/memory"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayAppname(cfg.AppName)

	portal, cleanup, err := buildPortal(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := &http.Server{Addr: cfg.Port, Handler: portal}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildPortal wires the portal's collaborators: remembered sessions persist
// in a bolt file under the data folder, ephemeral sessions live in memory
// and vanish on restart.
func buildPortal(cfg config.Config) (*server.Server, func(), error) {
	if err := os.MkdirAll(cfg.DataFolder, 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating data folder: %w", err)
	}
	remembered, err := boltkv.NewKVFromFile(filepath.Join(cfg.DataFolder, "sessions.db"), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session database: %w", err)
	}
	cleanup := func() {
		if err := remembered.Close(); err != nil {
			log.Printf("Error closing session database: %s\n", err)
		}
	}

	sessions, err := session.NewStore(remembered, memorykv.NewKV())
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	backend := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	authService, err := auth.NewService(backend, sessions)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	portal, err := server.New(cfg, authService, sessions, backend, geoResolver(cfg.Geo))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return portal, cleanup, nil
}

func geoResolver(cfg config.GeoConfig) *geo.Resolver {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	var locators []geo.Locator
	for _, endpoint := range cfg.IPLookupURLs {
		locators = append(locators, geo.NewIPLocator(endpoint, timeout))
	}
	var geocoders []geo.Geocoder
	for _, endpoint := range cfg.ReverseGeocodeURLs {
		geocoders = append(geocoders, geo.NewHTTPGeocoder(endpoint, timeout))
	}
	return geo.NewResolver(locators, geocoders)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
