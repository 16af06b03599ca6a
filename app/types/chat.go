package types

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type SendSMSRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
