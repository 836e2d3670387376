//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest       = "org.freedesktop.portal.Desktop"
	portalPath       = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	portalMethod     = "org.freedesktop.portal.Screenshot.Screenshot"
	portalResponse   = "org.freedesktop.portal.Request.Response"
	portalRequestIfc = "org.freedesktop.portal.Request"
)

// portalTimeout bounds the wait for the portal's answer. Desktops may show a
// permission prompt first.
var portalTimeout = 2 * time.Minute

var portalHandleToken = func() string {
	return fmt.Sprintf("snipshot_%d", time.Now().UnixNano())
}

// swapped in tests
var portalScreenshotFn = portalScreenshot

// Portal captures through the xdg-desktop-portal Screenshot interface. The
// portal always returns the full desktop, which is cropped to the requested
// area.
func Portal() Grabber {
	return named{name: BackendPortal, g: GrabberFunc(func(width, height, left, top int) (*Buffer, error) {
		want := image.Rect(left, top, left+width, top+height)
		if want.Empty() {
			return nil, errEmptyArea
		}
		desktop, err := portalScreenshotFn()
		if err != nil {
			return nil, err
		}
		return cropToRect(desktop, image.Point{}, want)
	})}
}

func portalScreenshot() (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	// Subscribe before calling so a fast portal cannot answer unseen. The
	// request path is derived from our unique name and the handle token.
	token := portalHandleToken()
	sender := strings.ReplaceAll(strings.TrimPrefix(conn.Names()[0], ":"), ".", "_")
	expected := dbus.ObjectPath(fmt.Sprintf("/org/freedesktop/portal/desktop/request/%s/%s", sender, token))
	match := []dbus.MatchOption{
		dbus.WithMatchInterface(portalRequestIfc),
		dbus.WithMatchMember("Response"),
	}
	if err := conn.AddMatchSignal(match...); err != nil {
		return nil, fmt.Errorf("portal subscribe: %w", err)
	}
	defer conn.RemoveMatchSignal(match...)
	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	var handle dbus.ObjectPath
	err = conn.Object(portalDest, portalPath).
		Call(portalMethod, 0, "", portalOptions(token)).
		Store(&handle)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot: %w", err)
	}

	deadline := time.NewTimer(portalTimeout)
	defer deadline.Stop()
	for {
		select {
		case sig, ok := <-signals:
			if !ok {
				return nil, errors.New("portal screenshot: bus closed before a response")
			}
			if sig.Name != portalResponse || (sig.Path != handle && sig.Path != expected) {
				continue
			}
			path, err := portalResponsePath(sig.Body)
			if err != nil {
				return nil, err
			}
			return takePortalFile(path)
		case <-deadline.C:
			return nil, fmt.Errorf("portal screenshot: no response after %s", portalTimeout)
		}
	}
}

func portalOptions(token string) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(false),
		"modal":        dbus.MakeVariant(false),
		"handle_token": dbus.MakeVariant(token),
	}
}

// portalResponsePath reads the file location out of a Response signal. The
// body is (response code, results); any code but 0 means the user cancelled
// or the portal failed.
func portalResponsePath(body []interface{}) (string, error) {
	if len(body) != 2 {
		return "", fmt.Errorf("portal screenshot: response has %d values, want 2", len(body))
	}
	code, _ := body[0].(uint32)
	if code != 0 {
		return "", fmt.Errorf("portal screenshot: request ended with code %d", code)
	}
	results, _ := body[1].(map[string]dbus.Variant)
	uri, _ := results["uri"].Value().(string)
	if uri == "" {
		return "", errors.New("portal screenshot: response has no uri")
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("portal screenshot: unsupported uri %q", uri)
	}
	return u.Path, nil
}

// takePortalFile decodes the screenshot the portal wrote and removes it.
func takePortalFile(path string) (*image.RGBA, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Debug("remove portal screenshot", "path", path, "error", err)
		}
	}()
	buf, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot: %w", err)
	}
	return buf.Image(), nil
}

func runningOnWayland() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}
