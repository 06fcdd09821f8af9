package router

import (
	"net/http"

	"github.com/mustafamoossawi/brief-server/brief"
	"github.com/mustafamoossawi/brief-server/handlers"
	"github.com/mustafamoossawi/brief-server/middleware"
)

func NewRouter(orch *brief.Orchestrator) http.Handler {
	mux := http.NewServeMux()

	briefHandler := handlers.NewBriefHandler(orch)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /briefs", middleware.WithLogging(briefHandler.StartBrief))
	mux.HandleFunc("GET /briefs/{id}", middleware.WithLogging(briefHandler.GetBrief))
	mux.HandleFunc("PATCH /briefs/{id}", middleware.WithLogging(briefHandler.UpdateBrief))
	mux.HandleFunc("POST /briefs/{id}/restore", middleware.WithLogging(briefHandler.Restore))
	mux.HandleFunc("POST /briefs/{id}/reset", middleware.WithLogging(briefHandler.Reset))

	// Form navigation
	mux.HandleFunc("POST /briefs/{id}/next", middleware.WithLogging(briefHandler.Next))
	mux.HandleFunc("POST /briefs/{id}/back", middleware.WithLogging(briefHandler.Back))

	// Moodboard images
	mux.HandleFunc("POST /briefs/{id}/moodboard", middleware.WithLogging(briefHandler.AddMoodboard))
	mux.HandleFunc("DELETE /briefs/{id}/moodboard/{index}", middleware.WithLogging(briefHandler.RemoveMoodboard))

	// Rendering and submission
	mux.HandleFunc("POST /briefs/{id}/pdf", middleware.WithLogging(briefHandler.RenderPDF))
	mux.HandleFunc("POST /briefs/{id}/submit", middleware.WithLogging(briefHandler.Submit))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("brief-server API v1"))
	})

	// The frontend is served from a different origin, so everything goes
	// through the CORS wrapper.
	return middleware.CORS(mux)
}
