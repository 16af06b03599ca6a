package controllers

import (
	"context"
	"encoding/json"
	"net/http"
)

// Completer is the single-shot text completion boundary. Reply never
// errors; the client maps every failure to a deliverable canned reply.
type Completer interface {
	Reply(ctx context.Context, message, transcript string) string
	Ready() bool
}

// Notifier is the outbound SMS boundary.
type Notifier interface {
	Send(ctx context.Context, phone, text string) bool
	Ready() bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
