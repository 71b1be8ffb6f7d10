package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"signserver/internal/config"
	"signserver/internal/handlers"
	"signserver/internal/logger"
	"signserver/internal/services/ai"
	"signserver/internal/services/events"
)

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, path+".html")

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers static file serving and the API endpoints.
func SetupRoutes(loader *ai.Loader, hub *events.HubService, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// API endpoints
	mux.HandleFunc("/api/analyze", handlers.AnalyzeHandler(loader, hub, cfg, logger))
	mux.HandleFunc("/api/report", handlers.ReportHandler(loader, cfg, logger))
	mux.HandleFunc("/api/events", handlers.EventsHandler(hub, logger))
	mux.HandleFunc("/health", handlers.HealthHandler)

	// Automatic HTML handler mapping, for example: /about -> static/about.html
	mux.HandleFunc("/", dynamicHTMLHandler(cfg.StaticDir))

	return mux
}
