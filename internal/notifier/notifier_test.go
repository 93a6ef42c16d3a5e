package notifier

import "testing"

func TestParsePermission(t *testing.T) {
	cases := []struct {
		in   string
		want PermissionState
	}{
		{"granted", PermissionGranted},
		{"denied", PermissionDenied},
		{"unsupported", PermissionUnsupported},
		{"default", PermissionDefault},
		{"", PermissionDefault},
		{"garbage", PermissionDefault},
	}
	for _, tc := range cases {
		if got := ParsePermission(tc.in); got != tc.want {
			t.Errorf("ParsePermission(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMemory_PermissionTransitions(t *testing.T) {
	m := NewMemory(PermissionDefault)

	if got := m.RequestPermission(); got != PermissionGranted {
		t.Fatalf("expected request from default to grant, got %q", got)
	}

	// Granted is terminal: a later Deny must not flip it.
	m.Deny()
	if got := m.Permission(); got != PermissionGranted {
		t.Errorf("expected granted to be terminal, got %q", got)
	}
}

func TestMemory_DeniedIsTerminal(t *testing.T) {
	m := NewMemory(PermissionDefault)
	m.Deny()

	if got := m.Permission(); got != PermissionDenied {
		t.Fatalf("expected denied after Deny, got %q", got)
	}
	if got := m.RequestPermission(); got != PermissionDenied {
		t.Errorf("expected re-request to keep denied, got %q", got)
	}
}

func TestMemory_DispatchGated(t *testing.T) {
	n := Notification{Title: "Time for Aspirin", Tag: "pill-reminder-Aspirin"}

	for _, state := range []PermissionState{PermissionDefault, PermissionDenied, PermissionUnsupported} {
		m := NewMemory(state)
		if err := m.Dispatch(n); err != nil {
			t.Fatalf("Dispatch must never fail the caller, got %v", err)
		}
		if len(m.Sent) != 0 {
			t.Errorf("expected no notification under %q, got %d", state, len(m.Sent))
		}
	}

	m := NewMemory(PermissionGranted)
	if err := m.Dispatch(n); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(m.Sent) != 1 || m.Sent[0].Tag != "pill-reminder-Aspirin" {
		t.Errorf("expected one sent notification with stable tag, got %+v", m.Sent)
	}
}

func TestUnsupportedIsTerminal(t *testing.T) {
	m := NewMemory(PermissionUnsupported)
	if m.IsSupported() {
		t.Error("expected unsupported dispatcher to report not supported")
	}
	if got := m.RequestPermission(); got != PermissionUnsupported {
		t.Errorf("expected unsupported to be terminal, got %q", got)
	}
}
