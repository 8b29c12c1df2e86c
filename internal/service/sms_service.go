package service

import (
	"fmt"
	"log"
	"strings"
)

// Sender delivers one SMS body to a phone number and returns a provider
// message id. The actual transport (Twilio etc.) is configured at wiring
// time; the default sender only logs.
type Sender interface {
	Send(phoneNumber, body string) (string, error)
}

// LogSender is the no-transport fallback used when no SMS provider is
// configured. Messages are logged instead of delivered.
type LogSender struct{}

func (LogSender) Send(phoneNumber, body string) (string, error) {
	log.Printf("SMS (dry-run) to %s: %d chars", phoneNumber, len(body))
	return fmt.Sprintf("dryrun-%s", phoneNumber), nil
}

// SMSResult records one delivery attempt for the admin response.
type SMSResult struct {
	Farmer string `json:"farmer"`
	Phone  string `json:"phone"`
	Status string `json:"status"` // "sent" or "failed"
	SID    string `json:"messageSid,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SMSService formats agricultural advice messages and hands them to the
// configured sender.
type SMSService struct {
	sender Sender
}

// NewSMSService creates an SMS service around the given sender. A nil
// sender falls back to logging only.
func NewSMSService(sender Sender) *SMSService {
	if sender == nil {
		sender = LogSender{}
	}
	return &SMSService{sender: sender}
}

// SendAdvice formats and sends one advice message. The language selects the
// message header; location is included so farmers know which field the
// advice covers.
func (s *SMSService) SendAdvice(phoneNumber, location, language, advice string) (string, error) {
	header, ok := adviceHeaders[language]
	if !ok {
		header = adviceHeaders["english"]
	}

	body := fmt.Sprintf("%s\n\nLocation: %s\n\n%s", header, location, advice)
	return s.sender.Send(FormatEthiopianPhone(phoneNumber), body)
}

// FormatEthiopianPhone normalizes a phone number to E.164 with the Ethiopian
// country code. Already-international numbers pass through unchanged.
func FormatEthiopianPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)

	switch {
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "0") && len(phone) == 10:
		// Local format 09XXXXXXXX
		return "+251" + phone[1:]
	case strings.HasPrefix(phone, "9") && len(phone) == 9:
		return "+251" + phone
	case strings.HasPrefix(phone, "251"):
		return "+" + phone
	default:
		return phone
	}
}
