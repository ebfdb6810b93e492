package ankiweb

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rememberit/internal/logging"
	"rememberit/internal/services"
	"rememberit/internal/session"
)

// clientString identifies this client in the sync handshake, mirroring the
// "version,client,platform" shape the server expects.
const clientString = "25.09.2,rememberit-sync,go-net-http"

const syncProtocolVersion = 11

type syncMeta struct {
	V int    `json:"v"`
	K string `json:"k"`
	C string `json:"c"`
	S string `json:"s"`
}

func syncMetaHeader(key string) string {
	meta := syncMeta{
		V: syncProtocolVersion,
		K: key,
		C: clientString,
		S: uuid.NewString()[:8],
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// Login exchanges credentials for a sync key via the sync host and returns
// the resulting session. The caller is responsible for persisting it.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	var empty session.Session
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return empty, services.Wrap(services.ErrValidation, "ankiweb", "login", "email and password required", nil)
	}

	body, err := json.Marshal(map[string]string{"u": email, "p": password})
	if err != nil {
		return empty, services.Wrap(services.ErrValidation, "ankiweb", "login", "encode credentials", err)
	}
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(body); err != nil {
		return empty, services.Wrap(services.ErrValidation, "ankiweb", "login", "compress credentials", err)
	}
	if err := gz.Close(); err != nil {
		return empty, services.Wrap(services.ErrValidation, "ankiweb", "login", "compress credentials", err)
	}

	extra := http.Header{}
	extra.Set("anki-sync", syncMetaHeader(""))

	respBody, _, err := c.post(ctx, "login", c.syncURL, "/sync/hostKey", "", compressed.Bytes(), extra)
	if err != nil {
		return empty, err
	}

	var parsed struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(decompressIfGzip(respBody), &parsed); err != nil {
		return empty, services.Wrap(services.ErrRemote, "ankiweb", "login", "decode host key response", err)
	}
	if parsed.Key == "" {
		return empty, services.Wrap(services.ErrRemote, "ankiweb", "login", "host key response missing key", nil)
	}

	sess := session.Session{
		Email:     email,
		SyncKey:   parsed.Key,
		Endpoint:  c.syncURL,
		UserAgent: c.userAgent,
	}
	c.session = sess
	c.logger.Info("logged in",
		logging.String(logging.FieldComponent, "ankiweb"),
		logging.String("email", email))
	return sess, nil
}

// decompressIfGzip transparently unwraps gzip response bodies; the login
// endpoint compresses both directions.
func decompressIfGzip(data []byte) []byte {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data
	}
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer reader.Close()
	plain, err := io.ReadAll(reader)
	if err != nil {
		return data
	}
	return plain
}
