//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	values := portalOptions("test-token")
	if v, ok := values["interactive"].Value().(bool); !ok || v {
		t.Fatalf("interactive = %v, want false", values["interactive"])
	}
	if v, ok := values["handle_token"].Value().(string); !ok || v != "test-token" {
		t.Fatalf("handle_token = %v", values["handle_token"])
	}
}

func TestPortalResponsePath(t *testing.T) {
	body := []interface{}{uint32(0), map[string]dbus.Variant{
		"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png"),
	}}
	path, err := portalResponsePath(body)
	if err != nil {
		t.Fatalf("portalResponsePath returned error: %v", err)
	}
	if path != "/tmp/Screenshot one.png" {
		t.Fatalf("path = %q", path)
	}

	if _, err := portalResponsePath([]interface{}{uint32(1), map[string]dbus.Variant{}}); err == nil {
		t.Fatalf("expected error for cancelled request")
	}
	if _, err := portalResponsePath([]interface{}{uint32(0)}); err == nil {
		t.Fatalf("expected error for malformed body")
	}
	remote := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("https://example.com/a.png")}}
	if _, err := portalResponsePath(remote); err == nil {
		t.Fatalf("expected error for a non-file uri")
	}
}

func TestTakePortalFileRemovesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 7, 3))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := takePortalFile(path)
	if err != nil {
		t.Fatalf("takePortalFile returned error: %v", err)
	}
	if img.Bounds().Size() != image.Pt(7, 3) {
		t.Fatalf("size = %v", img.Bounds().Size())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("portal file left behind")
	}
}

func TestPortalCropsToRequestedArea(t *testing.T) {
	prev := portalScreenshotFn
	t.Cleanup(func() { portalScreenshotFn = prev })
	portalScreenshotFn = func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 100, 50)), nil
	}

	buf, err := Portal().Capture(40, 40, 80, 20)
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if buf.Width() != 20 || buf.Height() != 30 || buf.Origin() != image.Pt(80, 20) {
		t.Fatalf("got %dx%d at %v", buf.Width(), buf.Height(), buf.Origin())
	}
}

func TestPortalFailureIsWrapped(t *testing.T) {
	prev := portalScreenshotFn
	t.Cleanup(func() { portalScreenshotFn = prev })
	portalErr := &dbus.Error{Name: "org.freedesktop.portal.Error.NotSupported"}
	portalScreenshotFn = func() (*image.RGBA, error) { return nil, portalErr }

	_, err := Portal().Capture(10, 10, 0, 0)
	var dbusErr *dbus.Error
	if !errors.As(err, &dbusErr) {
		t.Fatalf("expected wrapped portal error, got %v", err)
	}
}

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}
