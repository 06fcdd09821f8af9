/*
Package router defines HTTP routes for the brief API.

# Route Registration

NewRouter wires the orchestrator into a configured handler chain:

	handler := router.NewRouter(orch)

# Endpoints

Health:

	GET /health

Session lifecycle:

	POST  /briefs               - Start a session (optional draft key)
	GET   /briefs/{id}          - Current form state
	PATCH /briefs/{id}          - Merge a partial edit
	POST  /briefs/{id}/restore  - Resolve a pending draft (restore/discard)
	POST  /briefs/{id}/reset    - Blank form, step one

Form navigation:

	POST /briefs/{id}/next - Advance one step
	POST /briefs/{id}/back - Go back one step

Moodboard images:

	POST   /briefs/{id}/moodboard         - Add a data URI image
	DELETE /briefs/{id}/moodboard/{index} - Remove by position

Rendering and submission:

	POST /briefs/{id}/pdf    - Render for local download
	POST /briefs/{id}/submit - Render, deliver, clear the draft

Every route passes through the CORS wrapper so the portfolio frontend can
call the API cross-origin, and through request logging.
*/
package router
