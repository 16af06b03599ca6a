package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SuperiorKe/sms-africas-talking/app/services/ai"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/dao"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/models"
	"github.com/SuperiorKe/sms-africas-talking/app/types"
	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"go.uber.org/zap"
)

// historyLimit is how many stored messages feed the prompt transcript.
const historyLimit = 6

const apologyText = "Sorry, I'm having technical difficulties. Please try again."

type SMSController struct {
	users    *dao.UserDAO
	messages *dao.MessageDAO
	llm      Completer
	notifier Notifier
}

func NewSMSController(users *dao.UserDAO, messages *dao.MessageDAO, llm Completer, notifier Notifier) *SMSController {
	return &SMSController{users: users, messages: messages, llm: llm, notifier: notifier}
}

// HandleCallback processes the Africa's Talking inbound webhook.
// Malformed requests get a 400; once the payload is valid the gateway
// always gets "200 OK" back, whatever happens internally, because a
// non-200 makes it retry the whole callback.
func (c *SMSController) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || len(r.PostForm) == 0 {
		logging.ErrorLogger.Error("sms callback with empty form data")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("from")
	text := strings.TrimSpace(r.PostFormValue("text"))
	linkID := r.PostFormValue("linkId")

	logging.AppLogger.Info("sms received",
		zap.String("from", from),
		zap.String("to", r.PostFormValue("to")),
		zap.String("link_id", linkID),
		zap.String("date", r.PostFormValue("date")),
	)

	if from == "" || text == "" {
		logging.ErrorLogger.Error("sms callback missing sender phone or text")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	c.processTurn(r.Context(), from, text, linkID)

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// processTurn runs one inbound/reply cycle. Persistence failures abort
// the turn (with a best-effort apology SMS); an AI failure is already a
// deliverable fallback reply; a delivery failure only flips the stored
// reply's status to failed.
func (c *SMSController) processTurn(ctx context.Context, phone, text, linkID string) {
	user, err := c.users.FindOrCreateByPhone(ctx, phone)
	if err != nil {
		logging.ErrorLogger.Error("user lookup failed", zap.String("phone", phone), zap.Error(err))
		c.notifier.Send(ctx, phone, apologyText)
		return
	}
	if err := c.users.TouchLastActive(ctx, user.ID); err != nil {
		logging.ErrorLogger.Error("last_active update failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	if _, err := c.messages.SaveMessage(ctx, &user.ID, models.SenderUser, text, linkID, models.StatusReceived); err != nil {
		logging.ErrorLogger.Error("inbound message save failed", zap.Uint("user_id", user.ID), zap.Error(err))
		c.notifier.Send(ctx, phone, apologyText)
		return
	}

	history, err := c.messages.RecentByUser(ctx, user.ID, historyLimit)
	if err != nil {
		// Recoverable: answer without context rather than dropping the turn.
		logging.ErrorLogger.Error("history read failed", zap.Uint("user_id", user.ID), zap.Error(err))
		history = nil
	}
	transcript := ai.TranscriptFromMessages(history)

	reply := c.llm.Reply(ctx, text, transcript)

	aiMsg, err := c.messages.SaveMessage(ctx, &user.ID, models.SenderAI, reply, "", models.StatusSent)
	if err != nil {
		logging.ErrorLogger.Error("reply save failed", zap.Uint("user_id", user.ID), zap.Error(err))
		c.notifier.Send(ctx, phone, apologyText)
		return
	}

	if ok := c.notifier.Send(ctx, phone, reply); !ok {
		logging.ErrorLogger.Error("reply delivery failed", zap.String("phone", phone))
		if err := c.messages.UpdateStatus(ctx, aiMsg.ID, models.StatusFailed); err != nil {
			logging.ErrorLogger.Error("status update failed", zap.Uint("message_id", aiMsg.ID), zap.Error(err))
		}
		return
	}

	logging.AppLogger.Info("sms turn completed", zap.String("phone", phone))
}

// SendManual is a testing aid: POST JSON {phone, message}.
func (c *SMSController) SendManual(w http.ResponseWriter, r *http.Request) {
	var req types.SendSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Phone and message required"})
		return
	}

	if c.notifier.Send(r.Context(), req.Phone, req.Message) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "sent",
			"phone":   req.Phone,
			"message": req.Message,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to send SMS"})
}

const testSMSForm = `<form method="POST">
  <input type="text" name="phone" placeholder="+254XXXXXXXXX" required><br>
  <textarea name="message" placeholder="Test message" required></textarea><br>
  <button type="submit">Send Test SMS</button>
</form>`

// TestSMS is a testing aid: GET renders a minimal form, POST sends it.
func (c *SMSController) TestSMS(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testSMSForm))
		return
	}

	phone := r.PostFormValue("phone")
	message := r.PostFormValue("message")
	if phone == "" || message == "" {
		http.Error(w, "Phone and message required", http.StatusBadRequest)
		return
	}

	if c.notifier.Send(r.Context(), phone, message) {
		w.Write([]byte("SMS sent successfully to " + phone))
		return
	}
	http.Error(w, "Failed to send SMS to "+phone, http.StatusInternalServerError)
}
