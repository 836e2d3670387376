//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "fmt"

// Portal is unavailable outside freedesktop platforms.
func Portal() Grabber {
	return named{name: BackendPortal, g: GrabberFunc(func(int, int, int, int) (*Buffer, error) {
		return nil, fmt.Errorf("portal screenshot is not supported on this platform")
	})}
}

// X11 is unavailable outside freedesktop platforms.
func X11() Grabber {
	return named{name: BackendX11, g: GrabberFunc(func(int, int, int, int) (*Buffer, error) {
		return nil, fmt.Errorf("x11 capture is not supported on this platform")
	})}
}

func runningOnWayland() bool { return false }
