// cmd/api/healthcheck.go
// The health endpoint reports process uptime and database reachability.
package main

import (
	"net/http"
	"time"
)

// healthcheckHandler handles GET /health.
// It reports seconds since startup and probes the database with a
// round-trip ping; the response is always 200 even when the database is
// down, with the "database" field carrying the verdict.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "up"
	if err := app.db.PingContext(r.Context()); err != nil {
		app.logError(r, err)
		dbStatus = "down"
	}

	body := map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(app.startTime).Seconds()),
		"database":       dbStatus,
	}

	err := app.writeJSON(w, http.StatusOK, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
