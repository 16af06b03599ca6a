package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/services/ai"
	"github.com/SuperiorKe/sms-africas-talking/app/sessions"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/dao"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/models"
	"github.com/SuperiorKe/sms-africas-talking/app/types"
	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebController struct {
	store    *sessions.Store
	messages *dao.MessageDAO
	llm      Completer
}

func NewWebController(store *sessions.Store, messages *dao.MessageDAO, llm Completer) *WebController {
	return &WebController{store: store, messages: messages, llm: llm}
}

func (c *WebController) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<h1>SMS Learning Platform</h1><p><a href="/chat">Go to Chat Interface</a></p><p><a href="/health">Health Check</a></p>`))
}

func (c *WebController) ChatPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(chatPageHTML))
}

// APIChat is the ephemeral web-chat turn: history lives only in the
// session store, nothing is persisted.
func (c *WebController) APIChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request"})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Empty message"})
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	logging.AppLogger.Info("web chat message",
		zap.String("session_id", sessionID))

	c.store.Append(sessionID, models.SenderUser, message)
	transcript := ai.TranscriptFromTurns(c.store.Recent(sessionID, historyLimit))

	reply := c.llm.Reply(r.Context(), message, transcript)
	c.store.Append(sessionID, models.SenderAI, reply)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"response":   reply,
		"session_id": sessionID,
	})
}

// Chat is the durable variant: both turns go to the messages table with
// no owning user, scoped by session via link_id so unrelated sessions
// never see each other's history.
func (c *WebController) Chat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message required"})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message required"})
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	ctx := r.Context()
	if _, err := c.messages.SaveMessage(ctx, nil, models.SenderUser, message, sessionID, models.StatusReceived); err != nil {
		logging.ErrorLogger.Error("web message save failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	history, err := c.messages.RecentByLinkID(ctx, sessionID, historyLimit)
	if err != nil {
		logging.ErrorLogger.Error("web history read failed", zap.Error(err))
		history = nil
	}

	reply := c.llm.Reply(ctx, message, ai.TranscriptFromMessages(history))

	if _, err := c.messages.SaveMessage(ctx, nil, models.SenderAI, reply, sessionID, models.StatusSent); err != nil {
		logging.ErrorLogger.Error("web reply save failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// APIHistory returns the ephemeral transcript for one session.
func (c *WebController) APIHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	turns, ok := c.store.History(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Session not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"messages": turns,
	})
}

// HistoryDurable returns the persisted transcript for one web session.
func (c *WebController) HistoryDurable(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-Id")
	}
	if sessionID == "" {
		if cookie, err := r.Cookie("session_id"); err == nil {
			sessionID = cookie.Value
		}
	}
	if sessionID == "" {
		sessionID = "default"
	}

	msgs, err := c.messages.RecentByLinkID(r.Context(), sessionID, 50)
	if err != nil {
		logging.ErrorLogger.Error("chat history read failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	out := make([]map[string]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]string{
			"text":        m.Text,
			"sender_type": m.SenderType,
			"timestamp":   m.Timestamp.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out})
}

// CleanupSessions purges expired ephemeral sessions on demand. The
// background sweeper does the same on a timer.
func (c *WebController) CleanupSessions(w http.ResponseWriter, r *http.Request) {
	removed := c.store.SweepExpired(time.Now().UTC())
	logging.AppLogger.Info("cleaned up web chat sessions", zap.Int("removed", removed))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"cleaned_sessions": removed,
		"active_sessions":  c.store.Len(),
	})
}
