package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)
	logger.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	event := AuthenticateEvent{
		Email:             "ada@example.org",
		ClientIP:          "192.168.1.1",
		AuthenticatorName: "authn",
		Success:           true,
	}

	logger.Log(event)

	output := buf.String()

	// <PRI> = authpriv(10)*8 + info(6)
	if !strings.HasPrefix(output, "<86>1 2026-03-01T12:00:00.000Z ") {
		t.Errorf("unexpected header: %q", output)
	}
	if !strings.Contains(output, " vidzel ") {
		t.Error("Expected app name 'vidzel' in output")
	}
	if !strings.Contains(output, " authn ") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, `user="ada@example.org"`) {
		t.Error("Expected user in structured data")
	}
	if !strings.Contains(output, `[client@32473 ip="192.168.1.1"]`) {
		t.Error("Expected client IP in output")
	}
	if !strings.HasSuffix(output, "successfully authenticated with authenticator authn\n") {
		t.Error("Expected success message in output")
	}
}

func TestFormatStructuredDataIsSorted(t *testing.T) {
	sd := map[string]map[string]string{
		SDIDSubject: {"project": "p1", "invitation": "i1"},
		SDIDAuth:    {"user": "u1"},
	}
	got := formatStructuredData(sd)
	want := `[auth@32473 user="u1"][subject@32473 invitation="i1" project="p1"]`
	if got != want {
		t.Errorf("formatStructuredData() = %q, want %q", got, want)
	}
	if formatStructuredData(nil) != "" {
		t.Error("expected empty structured data for nil map")
	}
}

func TestEvents(t *testing.T) {
	tests := []struct {
		name      string
		event     Event
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name:      "signup",
			event:     SignupEvent{AccountID: "a1", Email: "ada@example.org", Role: "student", Success: true},
			wantMsg:   "ada@example.org signed up as student",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuth,
			wantMsgID: "signup",
		},
		{
			name:      "failed signup",
			event:     SignupEvent{Email: "ada@example.org", ErrorMessage: "email already registered"},
			wantMsg:   "ada@example.org failed to sign up: email already registered",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuth,
			wantMsgID: "signup",
		},
		{
			name:      "failed authentication",
			event:     AuthenticateEvent{Email: "ada@example.org", AuthenticatorName: "authn", ErrorMessage: "invalid credentials"},
			wantMsg:   "ada@example.org failed to authenticate with authenticator authn: invalid credentials",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
		{
			name:      "invitation sent",
			event:     InvitationEvent{UserID: "org1", InvitationID: "i1", ProjectID: "p1", Action: "send", Success: true},
			wantMsg:   "org1 sent invitation i1 for project p1",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuth,
			wantMsgID: "invitation",
		},
		{
			name:      "invitation accepted",
			event:     InvitationEvent{UserID: "u1", InvitationID: "i1", ProjectID: "p1", Action: "accept", Success: true},
			wantMsg:   "u1 accepted invitation i1 for project p1",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuth,
			wantMsgID: "invitation",
		},
		{
			name:      "application submitted",
			event:     ApplicationEvent{UserID: "u1", ProjectID: "p1", Action: "apply", Success: true},
			wantMsg:   "u1 applied to project p1",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuth,
			wantMsgID: "application",
		},
		{
			name:      "application rejected",
			event:     ApplicationEvent{UserID: "org1", ApplicationID: "a1", ProjectID: "p1", Action: "reject", Success: true},
			wantMsg:   "org1 rejected application a1",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuth,
			wantMsgID: "application",
		},
		{
			name:      "project completed",
			event:     ProjectEvent{UserID: "org1", ProjectID: "p1", Action: "complete", Success: true},
			wantMsg:   "org1 completed project p1",
			wantSev:   SeverityInfo,
			wantFac:   FacilityUser,
			wantMsgID: "project",
		},
		{
			name:      "upload",
			event:     UploadEvent{UserID: "u1", Key: "abc/cv.pdf", Backend: "badger", Size: 42, Success: true},
			wantMsg:   "u1 uploaded abc/cv.pdf (42 bytes) to badger",
			wantSev:   SeverityInfo,
			wantFac:   FacilityUser,
			wantMsgID: "upload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.event.Severity(); got != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", got, tt.wantSev)
			}
			if got := tt.event.Facility(); got != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", got, tt.wantFac)
			}
			if got := tt.event.MessageID(); got != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", got, tt.wantMsgID)
			}
		})
	}
}

func TestStructuredData(t *testing.T) {
	event := InvitationEvent{
		UserID:       "org1",
		ClientIP:     "10.0.0.1",
		InvitationID: "i1",
		ProjectID:    "p1",
		Action:       "send",
		Success:      true,
	}

	sd := event.StructuredData()

	if sd[SDIDAuth]["user"] != "org1" {
		t.Errorf("StructuredData auth.user = %v, want 'org1'", sd[SDIDAuth]["user"])
	}
	if sd[SDIDSubject]["invitation"] != "i1" {
		t.Errorf("StructuredData subject.invitation = %v, want 'i1'", sd[SDIDSubject]["invitation"])
	}
	if sd[SDIDClient]["ip"] != "10.0.0.1" {
		t.Errorf("StructuredData client.ip = %v, want '10.0.0.1'", sd[SDIDClient]["ip"])
	}
	if sd[SDIDAction]["result"] != "success" {
		t.Errorf("StructuredData action.result = %v, want 'success'", sd[SDIDAction]["result"])
	}

	failed := SignupEvent{Email: "ada@example.org"}.StructuredData()
	if failed[SDIDAction]["result"] != "failure" {
		t.Errorf("StructuredData action.result = %v, want 'failure'", failed[SDIDAction]["result"])
	}
	if _, ok := failed[SDIDSubject]; ok {
		t.Error("expected no subject element without an account id")
	}
}

func TestAuditToggle(t *testing.T) {
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
		{`all"special\chars]`, `"all\"special\\chars\]"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
