package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql"
)

type HealthController struct {
	db       *psql.Database
	llm      Completer
	notifier Notifier
}

func NewHealthController(db *psql.Database, llm Completer, notifier Notifier) *HealthController {
	return &HealthController{db: db, llm: llm, notifier: notifier}
}

// HealthCheck reports readiness of the AI client, the SMS client and the
// database. Always a 200; the body says what is down.
func (c *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	aiOK := c.llm.Ready()
	smsOK := c.notifier.Ready()
	dbOK := c.db.Ping(ctx) == nil

	status := "healthy"
	if !aiOK || !smsOK || !dbOK {
		status = "unhealthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": map[string]any{
			"ai":       map[string]bool{"status": aiOK},
			"sms":      map[string]bool{"status": smsOK},
			"database": map[string]bool{"status": dbOK},
		},
	})
}
