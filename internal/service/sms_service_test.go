package service

import (
	"strings"
	"testing"
)

func TestFormatEthiopianPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0912345678", "+251912345678"},
		{"912345678", "+251912345678"},
		{"251912345678", "+251912345678"},
		{"+251912345678", "+251912345678"},
		{"+14155550100", "+14155550100"},
		{"09 12-34-56-78", "+251912345678"},
		{" 0912345678 ", "+251912345678"},
	}
	for _, tc := range cases {
		if got := FormatEthiopianPhone(tc.in); got != tc.want {
			t.Errorf("FormatEthiopianPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// capturingSender records the last delivery instead of sending it.
type capturingSender struct {
	phone string
	body  string
}

func (s *capturingSender) Send(phoneNumber, body string) (string, error) {
	s.phone = phoneNumber
	s.body = body
	return "SM123", nil
}

func TestSendAdviceFormatsMessage(t *testing.T) {
	sender := &capturingSender{}
	svc := NewSMSService(sender)

	sid, err := svc.SendAdvice("0912345678", "Adama", "amharic", "water the field")
	if err != nil {
		t.Fatalf("SendAdvice() error = %v", err)
	}
	if sid != "SM123" {
		t.Errorf("sid = %q, want SM123", sid)
	}
	if sender.phone != "+251912345678" {
		t.Errorf("phone = %q, want normalized +251912345678", sender.phone)
	}
	for _, want := range []string{"የእርሻ ምክር", "Location: Adama", "water the field"} {
		if !strings.Contains(sender.body, want) {
			t.Errorf("body missing %q:\n%s", want, sender.body)
		}
	}
}

func TestSendAdviceUnknownLanguageHeader(t *testing.T) {
	sender := &capturingSender{}
	svc := NewSMSService(sender)

	if _, err := svc.SendAdvice("0912345678", "Adama", "klingon", "advice"); err != nil {
		t.Fatalf("SendAdvice() error = %v", err)
	}
	if !strings.Contains(sender.body, "Agricultural Advice") {
		t.Errorf("body missing english fallback header:\n%s", sender.body)
	}
}

func TestNewSMSServiceNilSender(t *testing.T) {
	svc := NewSMSService(nil)
	if _, err := svc.SendAdvice("0912345678", "Adama", "english", "advice"); err != nil {
		t.Errorf("SendAdvice() with log sender error = %v", err)
	}
}
