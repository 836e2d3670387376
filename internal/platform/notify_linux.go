//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(notifyDest, notifyPath).Call(notifyMethod, 0, notifyArgs(title, body, opts)...)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}

// notifyArgs builds the Notify arguments: app name, replaces id, icon,
// summary, body, actions, hints and timeout in milliseconds.
func notifyArgs(title, body string, opts Options) []interface{} {
	hints := map[string]dbus.Variant{}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return []interface{}{
		opts.appName(), uint32(0), opts.IconPath, title, body,
		[]string{}, hints, int32(opts.timeout().Milliseconds()),
	}
}
