package ai

import (
	"fmt"
	"strings"

	"github.com/SuperiorKe/sms-africas-talking/app/sessions"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/models"
)

// MaxReplyChars caps replies to a single SMS segment.
const MaxReplyChars = 160

// TranscriptFromMessages renders stored messages as role-prefixed lines,
// oldest first.
func TranscriptFromMessages(msgs []models.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, transcriptLine(m.SenderType, m.Text))
	}
	return strings.Join(lines, "\n")
}

// TranscriptFromTurns does the same for ephemeral web-chat turns.
func TranscriptFromTurns(turns []sessions.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, transcriptLine(t.Sender, t.Text))
	}
	return strings.Join(lines, "\n")
}

func transcriptLine(sender, text string) string {
	role := "Tutor"
	if sender == models.SenderUser {
		role = "User"
	}
	return role + ": " + text
}

func buildPrompt(p Persona, message, transcript string) string {
	return fmt.Sprintf(`%s

Your role:
%s

Conversation history:
%s

Current message: %s

Provide a helpful, concise SMS response (max %d characters):`,
		p.Role, p.Guidelines, transcript, message, MaxReplyChars)
}

// capReply trims and hard-truncates model output to one SMS segment.
func capReply(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= MaxReplyChars {
		return text
	}
	return string(runes[:MaxReplyChars-3]) + "..."
}
