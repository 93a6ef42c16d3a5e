package notifier

import (
	"sync"

	"github.com/gen2brain/beeep"

	"pillbox/internal/logger"
)

// Desktop dispatches reminders through the OS notification daemon. Permission
// is an application-level gate persisted in settings: the OS itself does not
// prompt, so RequestPermission records the user's consent given on the CLI.
type Desktop struct {
	mu    sync.Mutex
	state PermissionState
}

// NewDesktop returns a desktop dispatcher starting from a persisted
// permission state.
func NewDesktop(state PermissionState) *Desktop {
	return &Desktop{state: state}
}

func (d *Desktop) IsSupported() bool {
	return d.Permission() != PermissionUnsupported
}

func (d *Desktop) Permission() PermissionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Desktop) RequestPermission() PermissionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == PermissionDefault {
		d.state = PermissionGranted
	}
	return d.state
}

// Deny records a rejected permission request. Granted and denied are
// terminal for the session; only the default state transitions.
func (d *Desktop) Deny() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == PermissionDefault {
		d.state = PermissionDenied
	}
}

// Dispatch shows a desktop notification. Failures are logged and swallowed:
// a broken notification daemon must not fail dose bookkeeping.
func (d *Desktop) Dispatch(n Notification) error {
	if d.Permission() != PermissionGranted {
		logger.Debug("notification dropped, permission not granted", "tag", n.Tag, "state", d.Permission())
		return nil
	}

	// beeep has no coalescing key or interaction requirement; Tag and
	// RequireInteraction are carried for dispatchers that do.
	if err := beeep.Notify(n.Title, n.Body, ""); err != nil {
		logger.Warn("failed to show notification", "tag", n.Tag, "error", err)
	}
	return nil
}
