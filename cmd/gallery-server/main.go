package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/apeissigma/artic-gallery/pkg/artic"
	"github.com/apeissigma/artic-gallery/pkg/gallery"
	"github.com/apeissigma/artic-gallery/pkg/logging"
	"github.com/apeissigma/artic-gallery/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})

	// Configuration from environment
	port := getEnv("PORT", "8080")
	userAgent := getEnv("USER_AGENT", "artic-gallery/0.1.0")

	cfg := artic.DefaultConfig(userAgent)
	cfg.PageLimit = getEnvInt("PAGE_LIMIT", artic.DefaultPageLimit)

	// Redis is optional; without it the client runs uncached
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn().Err(err).Str("redis_url", redisURL).Msg("Redis unavailable, running without response cache")
		} else {
			logger.Info().Str("redis_url", redisURL).Msg("Connected to Redis")
			cfg.Redis = redisClient
			defer redisClient.Close()
		}
	}

	articClient, err := artic.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API client")
	}
	defer articClient.Close()

	batchCfg := pagination.DefaultConfig()
	batchCfg.Pages = getEnvInt("PAGES", 1)
	fetcher := pagination.NewBatchFetcher(articClient, batchCfg)

	loader := gallery.NewLoader(fetcher, gallery.Options{
		MinimumBucketSize: getEnvInt("MIN_BUCKET_SIZE", 0),
	})

	// Load once at startup; there is no refresh path. A failed load
	// leaves the session in the error state and the service serves the
	// error banner.
	session := gallery.NewSession()
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	session.Apply(loader.Load(loadCtx))
	cancelLoad()

	if msg := session.Err(); msg != "" {
		logger.Error().Str("error", msg).Msg("Initial gallery load failed")
	} else {
		logger.Info().
			Int("artworks", len(session.Artworks())).
			Int("buckets", len(session.Buckets())).
			Msg("Gallery loaded")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/gallery", galleryHandler(session))
	mux.HandleFunc("/api/decades", decadesHandler(session))
	mux.HandleFunc("/api/decades/", decadeHandler(session))
	mux.HandleFunc("/api/selection", selectionHandler(session))

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", httpServer.Addr).Str("user_agent", userAgent).Msg("Starting gallery server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info().Msg("Shutting down gallery server")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// View models returned by the JSON API. Display fields (artist line,
// image URL) are derived here, at the presentation boundary.
type artworkView struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Date     string `json:"date"`
	ImageURL string `json:"image_url"`
}

type decadeView struct {
	Label     string        `json:"label"`
	StartYear int           `json:"start_year"`
	Artworks  []artworkView `json:"artworks"`
}

type galleryView struct {
	Loading  bool         `json:"loading"`
	Error    string       `json:"error,omitempty"`
	Selected int          `json:"selected"`
	Decades  []decadeView `json:"decades"`
}

func newDecadeView(bucket gallery.DecadeBucket) decadeView {
	artworks := make([]artworkView, 0, len(bucket.Artworks))
	for _, artwork := range bucket.Artworks {
		artworks = append(artworks, artworkView{
			ID:       artwork.ID,
			Title:    artwork.Title,
			Artist:   artwork.ArtistLabel(),
			Date:     artwork.DateDisplay,
			ImageURL: artwork.ImageURL(),
		})
	}
	return decadeView{
		Label:     bucket.Label,
		StartYear: bucket.StartYear,
		Artworks:  artworks,
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func galleryHandler(session *gallery.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets := session.Buckets()
		decades := make([]decadeView, 0, len(buckets))
		for _, bucket := range buckets {
			decades = append(decades, newDecadeView(bucket))
		}

		writeJSON(w, http.StatusOK, galleryView{
			Loading:  session.Loading(),
			Error:    session.Err(),
			Selected: session.Selected(),
			Decades:  decades,
		})
	}
}

func decadesHandler(session *gallery.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets := session.Buckets()
		decades := make([]decadeView, 0, len(buckets))
		for _, bucket := range buckets {
			decades = append(decades, newDecadeView(bucket))
		}
		writeJSON(w, http.StatusOK, decades)
	}
}

func decadeHandler(session *gallery.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexStr := strings.TrimPrefix(r.URL.Path, "/api/decades/")
		index, err := strconv.Atoi(indexStr)
		if err != nil {
			http.Error(w, "invalid decade index", http.StatusBadRequest)
			return
		}

		buckets := session.Buckets()
		if index < 0 || index >= len(buckets) {
			http.Error(w, "decade index out of range", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, newDecadeView(buckets[index]))
	}
}

func selectionHandler(session *gallery.Session) http.HandlerFunc {
	type selection struct {
		Selected int `json:"selected"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, selection{Selected: session.Selected()})
		case http.MethodPut:
			var req struct {
				Index int `json:"index"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid selection body", http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, selection{Selected: session.Select(req.Index)})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
