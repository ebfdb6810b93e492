// Package session persists the sync credential to
// ~/.rememberit/settings.json: loaded on first use, written on login,
// removed on logout.
package session
