package notifier

import "sync"

// PermissionState mirrors the platform notification permission model.
type PermissionState string

const (
	PermissionDefault     PermissionState = "default"
	PermissionGranted     PermissionState = "granted"
	PermissionDenied      PermissionState = "denied"
	PermissionUnsupported PermissionState = "unsupported"
)

// ParsePermission maps a stored string onto a known state. Anything
// unrecognized falls back to default so a corrupt settings value never locks
// notifications into a terminal state.
func ParsePermission(s string) PermissionState {
	switch PermissionState(s) {
	case PermissionGranted, PermissionDenied, PermissionUnsupported:
		return PermissionState(s)
	default:
		return PermissionDefault
	}
}

// Notification is one reminder to put in front of the user. Tag is a stable
// coalescing key: dispatching a second notification with the same tag
// replaces the first rather than stacking a duplicate.
type Notification struct {
	Title              string
	Body               string
	Tag                string
	RequireInteraction bool
}

// Dispatcher is the permission-gated notification capability. Dispatch must
// never fail the caller: when the capability is unsupported or permission is
// not granted it silently drops the notification. Reminders are best-effort.
type Dispatcher interface {
	IsSupported() bool
	Permission() PermissionState
	RequestPermission() PermissionState
	Dispatch(n Notification) error
}

// Memory is an in-memory Dispatcher used in tests and dry runs. It records
// every notification that passed the permission gate.
type Memory struct {
	mu    sync.Mutex
	state PermissionState

	Sent []Notification
}

// NewMemory returns a Memory dispatcher in the given starting state.
func NewMemory(state PermissionState) *Memory {
	return &Memory{state: state}
}

func (m *Memory) IsSupported() bool {
	return m.Permission() != PermissionUnsupported
}

func (m *Memory) Permission() PermissionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Memory) RequestPermission() PermissionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == PermissionDefault {
		m.state = PermissionGranted
	}
	return m.state
}

// Deny moves the dispatcher into the denied state, standing in for the user
// rejecting the permission prompt.
func (m *Memory) Deny() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == PermissionDefault {
		m.state = PermissionDenied
	}
}

func (m *Memory) Dispatch(n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != PermissionGranted {
		return nil
	}
	m.Sent = append(m.Sent, n)
	return nil
}
