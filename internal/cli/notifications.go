package cli

import (
	"fmt"

	"pillbox/internal/notifier"
)

type NotificationsCmd struct {
	Status  *NotificationsStatusCmd  `cmd:"" help:"Show the notification permission state." default:"1"`
	Enable  *NotificationsEnableCmd  `cmd:"" help:"Grant permission to show reminders."`
	Disable *NotificationsDisableCmd `cmd:"" help:"Deny permission to show reminders."`
}

type NotificationsStatusCmd struct{}

func (c *NotificationsStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.LoadDispatcher(); err != nil {
		return err
	}

	state := ctx.Dispatcher.Permission()
	fmt.Printf("Notification permission: %s\n", state)
	switch state {
	case notifier.PermissionDefault:
		fmt.Println("Reminders are off until you run 'pillbox notifications enable'.")
	case notifier.PermissionDenied:
		fmt.Println("Reminders are silently dropped.")
	case notifier.PermissionUnsupported:
		fmt.Println("This platform cannot show desktop notifications.")
	}
	return nil
}

type NotificationsEnableCmd struct{}

func (c *NotificationsEnableCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.LoadDispatcher(); err != nil {
		return err
	}

	state := ctx.Dispatcher.RequestPermission()
	if err := ctx.SavePermission(); err != nil {
		return err
	}

	switch state {
	case notifier.PermissionGranted:
		fmt.Println("Notifications enabled.")
	case notifier.PermissionDenied:
		fmt.Println("Permission was previously denied and cannot be re-requested.")
	case notifier.PermissionUnsupported:
		fmt.Println("This platform cannot show desktop notifications.")
	}
	return nil
}

type NotificationsDisableCmd struct{}

func (c *NotificationsDisableCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.LoadDispatcher(); err != nil {
		return err
	}

	if d, ok := ctx.Dispatcher.(*notifier.Desktop); ok {
		d.Deny()
	}
	if err := ctx.SavePermission(); err != nil {
		return err
	}

	fmt.Printf("Notification permission: %s\n", ctx.Dispatcher.Permission())
	return nil
}
