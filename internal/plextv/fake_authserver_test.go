package plextv

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

const legacyToken = "12345678901234567890"

var baseConfig = DefaultConfig().
	WithClientID("abc").
	WithDevice(Device{
		Product:         "TestProduct",
		Version:         "1.0",
		Platform:        "unit",
		PlatformVersion: "test",
		Device:          "dev",
		DeviceName:      "devname",
	})

func newTestServer(cfg Config) (Config, *fakeAuthServer, *httptest.Server) {
	s := makeFakeServer(&cfg)
	ts := httptest.NewServer(&s)
	cfg.URL = ts.URL
	cfg.V2URL = ts.URL
	return cfg, &s, ts
}

var _ http.Handler = &fakeAuthServer{}

type fakeAuthServer struct {
	http.Handler
	config *Config
}

func makeFakeServer(cfg *Config) fakeAuthServer {
	f := fakeAuthServer{config: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/sign_in.xml", f.handleRegisterWithCredentials)
	mux.HandleFunc("POST /api/v2/pins", f.handlePIN)
	mux.HandleFunc("GET /api/v2/pins/", f.handleValidatePIN)
	mux.HandleFunc("GET /api/v2/user", f.handleUser)
	f.Handler = mux
	return f
}

func (f fakeAuthServer) handleRegisterWithCredentials(w http.ResponseWriter, r *http.Request) {
	wantHeaders := map[string]string{
		"Content-Type":             "application/x-www-form-urlencoded",
		"Accept":                   "application/xml",
		"X-Plex-Client-Identifier": f.config.ClientID,
		"X-Plex-Product":           f.config.Device.Product,
		"X-Plex-Version":           f.config.Device.Version,
		"X-Plex-Platform":          f.config.Device.Platform,
		"X-Plex-Platform-Version":  f.config.Device.PlatformVersion,
		"X-Plex-Device":            f.config.Device.Device,
		"X-Plex-Device-Name":       f.config.Device.DeviceName,
	}
	if err := validateRequest(r, wantHeaders); err != nil {
		plexError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, _ := io.ReadAll(r.Body)
	vals, _ := url.ParseQuery(string(body))
	if vals.Get("user[login]") != "user" || vals.Get("user[password]") != "pass" {
		plexError(w, http.StatusUnauthorized, "invalid login/password")
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = xml.NewEncoder(w).Encode(struct {
		XMLName             xml.Name `xml:"user"`
		AuthenticationToken string   `xml:"authenticationToken,attr"`
	}{AuthenticationToken: legacyToken})
}

func (f fakeAuthServer) handlePIN(w http.ResponseWriter, r *http.Request) {
	wantHeaders := map[string]string{
		"Accept":                   "application/json",
		"X-Plex-Client-Identifier": f.config.ClientID,
	}
	if err := validateRequest(r, wantHeaders); err != nil {
		plexError(w, http.StatusBadRequest, err.Error())
		return
	}
	code, id := "1234", 42
	if f.config.ClientID == "pin-timeout-test" {
		code, id = "5678", 43
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code": code,
		"id":   id,
	})
}

func (f fakeAuthServer) handleValidatePIN(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v2/pins/")
	codes := map[string]string{"42": "1234"}
	code, ok := codes[id]
	if !ok {
		http.Error(w, "invalid pin id", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"authToken": legacyToken,
		"code":      code,
	})
}

func (f fakeAuthServer) handleUser(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Plex-Token") != legacyToken {
		plexError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(User{
		Id:       475814,
		Uuid:     "35c1a6fd2b630943",
		Username: "user",
		Title:    "user",
	})
}

func validateRequest(r *http.Request, wantHeaders map[string]string) error {
	for k, v := range wantHeaders {
		if got := r.Header.Get(k); got != v {
			return fmt.Errorf("invalid header: %s=%s", k, got)
		}
	}
	return nil
}

func plexError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{ "error": "` + msg + `" }`))
}
