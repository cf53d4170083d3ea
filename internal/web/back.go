package web

import (
	"net/http"
	"net/url"
	"strings"
)

// JournalPath es la raíz del journal; el Referer solo se acepta como back
// si apunta ahí.
const JournalPath = "/visits/journal"

// SanitizeBack acepta solo rutas relativas al sitio ("/..." pero no "//...").
func SanitizeBack(back string) (string, bool) {
	b := strings.TrimSpace(back)
	if b == "" || !strings.HasPrefix(b, "/") || strings.HasPrefix(b, "//") {
		return "", false
	}
	// "/\evil.com" lo interpretan algunos navegadores como "//evil.com".
	if strings.HasPrefix(b, "/\\") {
		return "", false
	}
	return b, true
}

// RefererPath reduce un Referer absoluto a path+query. "" si no se puede.
func RefererPath(referer string) string {
	ref := strings.TrimSpace(referer)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" {
		return ""
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// BackURL usa ?back= si es seguro; si no, def.
func BackURL(r *http.Request, def string) string {
	if b, ok := SanitizeBack(r.URL.Query().Get("back")); ok {
		return b
	}
	return def
}

// JournalBackURL es BackURL con un paso más: si no vino ?back= y el
// Referer es el journal, volvemos ahí.
func JournalBackURL(r *http.Request, def string) string {
	if b, ok := SanitizeBack(r.URL.Query().Get("back")); ok {
		return b
	}
	if b, ok := SanitizeBack(RefererPath(r.Referer())); ok && strings.HasPrefix(b, JournalPath) {
		return b
	}
	return def
}
