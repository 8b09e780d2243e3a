package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"realo-api/internal/config"
	"realo-api/internal/database"
	"realo-api/internal/handlers"
	"realo-api/internal/logger"
	"realo-api/internal/metrics"
	"realo-api/internal/repository"
	"realo-api/internal/search"
	"realo-api/internal/share"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// previewOriginPattern admits ephemeral frontend preview deployments.
var previewOriginPattern = regexp.MustCompile(`^https://[a-z0-9-]+\.vercel\.app$`)

func main() {
	configPath := getEnv("CONFIG_PATH", "config/realo.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		appConfig = config.DefaultConfig()
	}

	log := logger.New("realo-api", appConfig.Logging.Level)
	if err != nil {
		log.WithError(err).Warnf("Failed to load config from %s, using defaults", configPath)
	} else {
		log.Infof("Loaded configuration from %s", configPath)
	}

	// The connection pool is built here, once, and injected into the
	// repositories; nothing lazily connects on the first request.
	sqlDB, dialect, closeDB, err := openDatabase(appConfig)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer closeDB()
	log.Infof("Connected to %s database", dialect)

	propertyRepo := repository.NewPropertyRepository(sqlDB, dialect)
	userRepo := repository.NewUserRepository(sqlDB, dialect)

	var searchClient *search.SearchClient
	if appConfig.Search.Enabled && appConfig.Search.Meilisearch.Host != "" {
		searchClient = search.NewSearchClient(
			appConfig.Search.Meilisearch.Host,
			appConfig.Search.Meilisearch.APIKey,
		)
		if err := searchClient.InitIndex(); err != nil {
			log.WithError(err).Warn("Failed to initialize search index")
		}
	}

	responder := share.NewResponder(appConfig.Share.SiteOrigin, appConfig.Share.DefaultImage)
	httpMetrics := metrics.New("api")

	propertyHandler := handlers.NewPropertyHandler(propertyRepo, searchClient, responder, log)
	userHandler := handlers.NewUserHandler(userRepo, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if appConfig.Logging.LogRequests {
		r.Use(handlers.RequestLogger(log))
	}
	r.Use(httpMetrics.Middleware())
	r.Use(handlers.BodyLimit(appConfig.Server.MaxBodyBytes))

	// CORS configuration
	staticOrigins := appConfig.CORS.OriginList()
	allowPreviews := appConfig.CORS.AllowPreviewSubdomains
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			normalized := strings.TrimRight(origin, "/")
			for _, o := range staticOrigins {
				if strings.EqualFold(o, normalized) {
					return true
				}
			}
			return allowPreviews && previewOriginPattern.MatchString(strings.ToLower(normalized))
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	property := r.Group("/api/Property")
	{
		property.GET("/GetProperties", propertyHandler.GetProperties)
		property.GET("/GetProperty/:id", propertyHandler.GetProperty)
		property.POST("/PostProperty", propertyHandler.PostProperty)
		property.PUT("/PutProperty/:id", propertyHandler.PutProperty)
		property.DELETE("/DeleteProperty/:id", propertyHandler.DeleteProperty)
		property.GET("/GetPropertyImages/:propertyId", propertyHandler.GetPropertyImages)
		property.GET("/GetPropertyMainImage/:propertyId", propertyHandler.GetPropertyMainImage)
		property.POST("/AddPropertyImage/:propertyId", propertyHandler.AddPropertyImage)
		property.PUT("/UpdatePropertyImages/:propertyId", propertyHandler.UpdatePropertyImages)
		property.DELETE("/DeletePropertyImage/:propertyId/:imageId", propertyHandler.DeletePropertyImage)
		property.GET("/ShareProperty/:id", propertyHandler.ShareProperty)
		property.GET("/SearchProperties", propertyHandler.SearchProperties)
	}

	// Stable share URL, also used as og:url in the preview document
	r.GET("/share/:id", propertyHandler.ShareProperty)

	user := r.Group("/api/Mjeku")
	{
		user.GET("/GetMjeket", userHandler.GetUsers)
		user.GET("/GetMjeku/:id", userHandler.GetUser)
		user.POST("/PostMjeku", userHandler.PostUser)
		user.PUT("/PutMjeku/:id", userHandler.PutUser)
		user.DELETE("/DeleteMjeku/:id", userHandler.DeleteUser)
	}

	r.NoRoute(handlers.NotFound)

	port := appConfig.Server.Port
	log.Infof("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// openDatabase builds the configured pool and runs schema setup. All three
// drivers hand the same *sql.DB to the repositories.
func openDatabase(cfg *config.Config) (*sql.DB, database.Dialect, func() error, error) {
	switch cfg.Database.Type {
	case "postgres":
		pg := cfg.Database.Postgres
		db, err := database.NewDB(
			defaultStr(pg.Host, "localhost"),
			defaultPort(pg.Port, "5432"),
			defaultStr(pg.User, "realo_user"),
			pg.Password,
			defaultStr(pg.Database, "realo_db"),
			pg.SSLMode,
		)
		if err != nil {
			return nil, "", nil, err
		}
		if err := db.InitSchema(); err != nil {
			db.Close()
			return nil, "", nil, err
		}
		return db.Conn(), database.DialectPostgres, db.Close, nil

	case "sqlite":
		db, err := database.NewSQLiteDB(cfg.Database.SQLite.Path)
		if err != nil {
			return nil, "", nil, err
		}
		if err := db.InitSchema(); err != nil {
			db.Close()
			return nil, "", nil, err
		}
		return db.Conn(), database.DialectSQLite, db.Close, nil

	default: // mysql
		my := cfg.Database.MySQL
		db, err := database.NewGormDB(
			defaultStr(my.Host, "localhost"),
			defaultPort(my.Port, "3306"),
			defaultStr(my.User, "realo_user"),
			my.Password,
			defaultStr(my.Database, "realo_db"),
		)
		if err != nil {
			return nil, "", nil, err
		}
		if err := db.InitSchema(); err != nil {
			db.Close()
			return nil, "", nil, err
		}
		sqlDB, err := db.SQLDB()
		if err != nil {
			db.Close()
			return nil, "", nil, err
		}
		return sqlDB, database.DialectMySQL, db.Close, nil
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func defaultPort(p int, fallback string) string {
	if p > 0 {
		return fmt.Sprintf("%d", p)
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
