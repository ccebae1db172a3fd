package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "femtoamp/docs" // swagger spec registration
	"femtoamp/internal/femto"
	"femtoamp/internal/handlers"
	"femtoamp/internal/logger"
	"femtoamp/internal/models"
	"femtoamp/internal/repository"
	"femtoamp/internal/server"
	"femtoamp/internal/service"
	"femtoamp/internal/telemetry"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	defaultDevicePort      = 8888
	defaultExchangeTimeout = 5 * time.Second
	defaultTelemetryTick   = 5 * time.Second
)

// @title        femtoamp API
// @description  Control plane for a Femto DLPCA-200 current amplifier behind an Arduino UDP bridge.
// @version      1.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(db)

	// open the device session and confirm connectivity
	session, cache := connectDevice(repos, log)
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Errorw("failed to close device session", "err", cerr)
		}
	}()

	// optional MQTT telemetry sink
	pub := openPublisher(log)
	if pub != nil {
		defer pub.Close()
	}

	// wire dependencies
	services := service.NewService(repos, cache, publisherOrNil(pub), viper.GetString("auth.signing_key"))
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start telemetry publisher (via composed service)
	go services.Telemetry.Run(ctx, telemetryTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// connectDevice dials the controller and performs the ID? handshake.
// A failed handshake is logged and leaves the cache at INITIALIZING;
// the process keeps serving and refreshes surface failures until the
// device answers. There is no reconnect loop.
func connectDevice(repos *repository.Repository, log *logger.Logger) (*femto.Session, *service.StateCache) {
	address := viper.GetString("device.address")
	port := viper.GetInt("device.port")
	if port == 0 {
		port = defaultDevicePort
	}
	timeout := viper.GetDuration("device.timeout")
	if timeout == 0 {
		timeout = defaultExchangeTimeout
	}

	log.Infow("connecting to amplifier controller", "address", address, "port", port)
	session, err := femto.Dial(address, port, timeout)
	if err != nil {
		log.Fatalw("failed to open device session", "err", err)
	}

	cache := service.NewStateCache(session)
	idn, err := session.Identify()
	if err != nil {
		log.Errorw("amplifier identification failed", "err", err)
		if aerr := repos.EventRepo.Append(context.Background(), models.DeviceEvent{
			Type:        models.EventError,
			Description: "Amplifier identification failed",
			Metadata:    map[string]any{"error": err.Error()},
		}); aerr != nil {
			log.Errorw("failed to record error event", "err", aerr)
		}
		return session, cache
	}
	log.Infow("connection established", "id", idn)
	cache.MarkConnected()

	if aerr := repos.EventRepo.Append(context.Background(), models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventConnect,
		Description: "Connection established",
		Metadata:    map[string]any{"id": idn},
	}); aerr != nil {
		log.Errorw("failed to record connect event", "err", aerr)
	}
	return session, cache
}

// openPublisher connects the MQTT sink when a broker is configured.
func openPublisher(log *logger.Logger) *telemetry.MQTTPublisher {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return nil
	}
	topic := viper.GetString("mqtt.topic")
	if topic == "" {
		topic = "femtoamp/state"
	}
	pub, err := telemetry.NewMQTTPublisher(broker, "femtoamp", topic)
	if err != nil {
		log.Errorw("mqtt telemetry disabled", "err", err, "broker", broker)
		return nil
	}
	log.Infow("mqtt telemetry enabled", "broker", broker, "topic", topic)
	return pub
}

// publisherOrNil avoids handing services a typed nil pointer.
func publisherOrNil(pub *telemetry.MQTTPublisher) service.Publisher {
	if pub == nil {
		return nil
	}
	return pub
}

func telemetryTick() time.Duration {
	if d := viper.GetDuration("mqtt.interval"); d > 0 {
		return d
	}
	return defaultTelemetryTick
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
