package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/franciscosanchezn/pizza-restaurants-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/config"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// @title Pizza Restaurants API
// @version 1.0
// @description Restaurants, pizzas and the prices restaurants charge for them
// @host localhost:5555
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	// Initialize database connection
	db := setupDatabase(configuration)
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	if configuration.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := routes.NewRouter(db, routes.Options{
		AllowedOrigins: configuration.AllowedOrigins(),
		Logger:         log.StandardLogger(),
	})

	// Start the server
	if err := serve(router, configuration.Address()); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Server stopped")
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger sets a JSON formatter and the level resolved by the configuration
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})

	level := conf.Level()
	log.SetLevel(level)
	database.SetLogLevel(level)
}

// loadConfig loads the application configuration
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects, migrates the schema and seeds sample data when enabled
func setupDatabase(conf *config.Config) *gorm.DB {
	dbConfig, err := database.ParseDatabaseURI(conf.DatabaseURI)
	checkPanicErr(err)
	dbConfig.MaxRetries = conf.DBMaxRetries
	dbConfig.LogSQL = log.IsLevelEnabled(log.DebugLevel)

	db, err := database.InitDatabase(dbConfig)
	checkPanicErr(err)

	checkPanicErr(database.Migrate(db))

	if conf.SeedDatabase {
		_, err := database.SeedDatabase(db)
		checkPanicErr(err)
	}
	return db
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight requests
func serve(handler http.Handler, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
