package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/directions"
	"trip-route-service/internal/adapters/eta"
	"trip-route-service/internal/adapters/geocode"
	"trip-route-service/internal/adapters/optimize"
	"trip-route-service/internal/adapters/routestore"
	"trip-route-service/internal/api"
	"trip-route-service/internal/config"
	"trip-route-service/internal/platform/db"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (OpenCage, Mapbox, optimizer, route store)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	opencageKey := requireEnv("OPENCAGE_API_KEY")
	mapboxToken := requireEnv("MAPBOX_TOKEN")
	optimizerURL := requireEnv("OPTIMIZER_URL")
	routeStoreURL := requireEnv("ROUTE_STORE_URL")

	// Postgres geocode cache is optional: without DATABASE_URL every
	// resolution goes straight to OpenCage.
	var geocodeCache *cache.SQLGeocodeCache
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSchema(pg); err != nil {
			log.Fatal(err)
		}
		geocodeCache = cache.NewSQLGeocodeCache(pg)
	}

	// Redis suggestion cache is likewise optional.
	var suggestCache *cache.RedisSuggestCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		suggestCache = cache.NewRedisSuggestCache(rdb, 5*time.Minute)
	}

	geocoder, err := geocode.NewOpenCageGeocoder(opencageKey, geocodeCache, suggestCache)
	if err != nil {
		log.Fatal(err)
	}

	optimizer, err := optimize.NewHTTPOptimizer(optimizerURL)
	if err != nil {
		log.Fatal(err)
	}

	mapbox, err := directions.NewMapboxDirections(mapboxToken)
	if err != nil {
		log.Fatal(err)
	}

	store, err := routestore.NewHTTPRouteStore(routeStoreURL)
	if err != nil {
		log.Fatal(err)
	}

	// ETA prediction is best-effort; without a predictor the summary
	// simply omits the predicted line.
	var predictor ports.ETAPredictor
	if predictorURL := os.Getenv("ETA_PREDICTOR_URL"); strings.TrimSpace(predictorURL) != "" {
		p, err := eta.NewHTTPPredictor(predictorURL)
		if err != nil {
			log.Fatal(err)
		}
		predictor = p
	}

	orchestrator := services.NewOrchestrator(geocoder, optimizer, mapbox, predictor)
	router := api.NewRouter(orchestrator, geocoder, store)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		log.Fatalf("%s is required", key)
	}
	return v
}
