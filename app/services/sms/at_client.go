// Package sms wraps the Africa's Talking messaging API.
package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"go.uber.org/zap"
)

type ATClient struct {
	username    string
	apiKey      string
	senderID    string
	baseURL     string
	countryCode string
	httpClient  *http.Client
}

func NewATClient(cfg config.Config) *ATClient {
	return &ATClient{
		username:    cfg.ATUsername,
		apiKey:      cfg.ATAPIKey,
		senderID:    cfg.ATSenderID,
		baseURL:     cfg.ATBaseURL,
		countryCode: cfg.CountryCode,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *ATClient) Ready() bool {
	return c.username != "" && c.apiKey != ""
}

// sendResponse mirrors the messaging API's per-recipient status shape.
type sendResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			Number     string `json:"number"`
			Status     string `json:"status"`
			StatusCode int    `json:"statusCode"`
			Cost       string `json:"cost"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// NormalizePhone applies the local-number heuristic: keep "+..." as is,
// prefix a bare country code with "+", swap a leading zero for the
// country prefix, and otherwise prepend the country prefix. Not full
// E.164 validation.
func (c *ATClient) NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	switch {
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, c.countryCode):
		return "+" + phone
	case strings.HasPrefix(phone, "0"):
		return "+" + c.countryCode + phone[1:]
	default:
		return "+" + c.countryCode + phone
	}
}

// Send delivers one SMS. It reports success only when every recipient in
// the response shows a Success status; transport errors, non-2xx replies
// and malformed bodies all come back false. No retry, no queuing.
func (c *ATClient) Send(ctx context.Context, phone, text string) bool {
	defer logging.LogDuration(ctx, "at_send_sms")()

	if !c.Ready() {
		logging.ErrorLogger.Error("sms service not configured")
		return false
	}

	to := c.NormalizePhone(phone)
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", to)
	form.Set("message", text)
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		logging.ErrorLogger.Error("sms request build failed", zap.Error(err))
		return false
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logging.ErrorLogger.Error("sms send failed", zap.String("to", to), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logging.ErrorLogger.Error("sms send bad status",
			zap.String("to", to), zap.Int("status", resp.StatusCode))
		return false
	}

	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logging.ErrorLogger.Error("sms response decode failed", zap.Error(err))
		return false
	}

	recipients := parsed.SMSMessageData.Recipients
	if len(recipients) == 0 {
		logging.ErrorLogger.Error("sms response had no recipients",
			zap.String("message", parsed.SMSMessageData.Message))
		return false
	}
	for _, r := range recipients {
		if r.Status != "Success" {
			logging.ErrorLogger.Error("sms delivery failed",
				zap.String("number", r.Number),
				zap.String("status", r.Status),
				zap.Int("status_code", r.StatusCode))
			return false
		}
	}

	logging.AppLogger.Info("sms sent", zap.String("to", to))
	return true
}
