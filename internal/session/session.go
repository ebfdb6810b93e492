package session

import "strings"

// Session holds the process-wide credential record persisted between runs.
// A zero Session means logged out.
type Session struct {
	Email              string `json:"email,omitempty"`
	SyncKey            string `json:"sync_key,omitempty"`
	Endpoint           string `json:"endpoint,omitempty"`
	UserAgent          string `json:"user_agent,omitempty"`
	CookieHeader       string `json:"cookie_header,omitempty"`
	CookieHeaderWeb    string `json:"cookie_header_web,omitempty"`
	CookieHeaderEditor string `json:"cookie_header_editor,omitempty"`
	DisplayFormat      string `json:"display_format,omitempty"`
}

// Authenticated reports whether the session carries a usable sync key.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.SyncKey) != ""
}

// CookieFor returns the cookie header to send for the given host, preferring
// host-specific values pasted from a browser over the legacy shared one.
func (s Session) CookieFor(host string) string {
	switch {
	case strings.HasSuffix(host, "ankiuser.net") && s.CookieHeaderEditor != "":
		return s.CookieHeaderEditor
	case strings.HasSuffix(host, "ankiweb.net") && s.CookieHeaderWeb != "":
		return s.CookieHeaderWeb
	default:
		return s.CookieHeader
	}
}
