/*
Package handlers contains HTTP request handlers for the brief API.

# Handler Types

BriefHandler wraps the orchestrator and exposes one method per endpoint.
It is created via a constructor that accepts the orchestrator:

	briefHandler := handlers.NewBriefHandler(orch)

# Session Lifecycle

A brief session moves through the four form steps and ends in a
submission:

	POST  /briefs               → StartBrief (returns brief_id, draft info)
	GET   /briefs/{id}          → GetBrief
	PATCH /briefs/{id}          → UpdateBrief (partial edits)
	POST  /briefs/{id}/restore  → Restore (resolve a saved draft)
	POST  /briefs/{id}/next     → Next
	POST  /briefs/{id}/back     → Back
	POST  /briefs/{id}/pdf      → RenderPDF (download, review step only)
	POST  /briefs/{id}/submit   → Submit (requires {"confirmed":true})
	POST  /briefs/{id}/reset    → Reset

Moodboard images travel as base64 data URIs:

	POST   /briefs/{id}/moodboard         → AddMoodboard
	DELETE /briefs/{id}/moodboard/{index} → RemoveMoodboard

# Error Mapping

Pipeline errors map onto statuses in writeOrchestratorError: unknown
briefs are 404, lifecycle conflicts (wrong step, already submitted, busy,
moodboard full) are 409, malformed input is 400, oversized images are
413, and configuration or delivery failures are 500. The error text is
returned in the details field so the form can show it to the client.
*/
package handlers
