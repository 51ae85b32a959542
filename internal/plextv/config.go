package plextv

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/google/uuid"
)

// Device identifies the client when registering with plex.tv. The fields are
// passed as X-Plex-* headers and show up under Authorized Devices in the
// account settings. Although this package provides a default, it is
// recommended to set this yourself.
type Device struct {
	// Product is the name of the client product.
	// Passed as X-Plex-Product header.
	Product string
	// Version is the version of the client application.
	// Passed as X-Plex-Version header.
	Version string
	// Platform is the operating system or compiler of the client application.
	// Passed as X-Plex-Platform header.
	Platform string
	// PlatformVersion is the version of the platform.
	// Passed as X-Plex-Platform-Version header.
	PlatformVersion string
	// Device is a relatively friendly name for the client device.
	// Passed as X-Plex-Device header.
	Device string
	// DeviceName is a friendly name for the client.
	// Passed as X-Plex-Device-Name header.
	DeviceName string
}

// populateRequest populates the request headers with the device information.
func (d Device) populateRequest(req *http.Request) {
	headers := map[string]string{
		"X-Plex-Product":          d.Product,
		"X-Plex-Version":          d.Version,
		"X-Plex-Platform":         d.Platform,
		"X-Plex-Platform-Version": d.PlatformVersion,
		"X-Plex-Device":           d.Device,
		"X-Plex-Device-Name":      d.DeviceName,
	}
	for key, value := range headers {
		if value != "" {
			req.Header.Set(key, value)
		}
	}
}

func defaultDevice() Device {
	device := Device{
		Product:         "plex-watch-history",
		Version:         "(devel)",
		Device:          "plex-watch-history",
		Platform:        runtime.GOOS,
		PlatformVersion: runtime.Version(),
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		device.Version = info.Main.Version
	}
	device.DeviceName, _ = os.Hostname()
	return device
}

// Config contains the configuration required to authenticate with plex.tv.
type Config struct {
	// Device information used during device registration.
	Device Device
	// URL is the base URL of the legacy Plex authentication endpoint.
	// Defaults to https://plex.tv and should not need to be changed.
	URL string
	// V2URL is the base URL of the new Plex authentication endpoint.
	// Defaults to https://clients.plex.tv and should not need to be changed.
	V2URL string
	// ClientID is the unique identifier of the client application.
	ClientID string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		URL:      "https://plex.tv",
		V2URL:    "https://clients.plex.tv",
		ClientID: uuid.New().String(),
		Device:   defaultDevice(),
	}
}

// WithClientID sets the Client ID.
func (c Config) WithClientID(clientID string) Config {
	c.ClientID = clientID
	return c
}

// WithDevice sets the device information used during device registration.
func (c Config) WithDevice(device Device) Config {
	c.Device = device
	return c
}
