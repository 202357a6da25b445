package adapters

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
)

// maxMemory bounds the in-memory part of multipart forms
const maxMemory = 32 << 20 // 32 MB

const (
	mimeJSON          = "application/json"
	mimeForm          = "application/x-www-form-urlencoded"
	mimeMultipartForm = "multipart/form-data"
)

// mediaType strips parameters from a Content-Type value and folds
// "+json" types into application/json
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(mt, "+json") {
		return mimeJSON
	}
	return mt
}

// decodeJSON decodes a JSON document into plain Go values. Empty or
// malformed input yields nil, which extractors treat as a missing body.
func decodeJSON(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// flattenForm turns form values into an object. Keys sent once become a
// string; repeated keys keep all their values.
func flattenForm(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			out[key] = vals[0]
		default:
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			out[key] = list
		}
	}
	return out
}

// decodeHTTPBody decodes the body of a net/http request by content type
func decodeHTTPBody(r *http.Request) any {
	if r == nil || r.Body == nil {
		return nil
	}
	switch mediaType(r.Header.Get("Content-Type")) {
	case mimeJSON:
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil
		}
		return decodeJSON(raw)
	case mimeForm:
		if err := r.ParseForm(); err != nil {
			return nil
		}
		return flattenForm(r.PostForm)
	case mimeMultipartForm:
		if err := r.ParseMultipartForm(maxMemory); err != nil || r.MultipartForm == nil {
			return nil
		}
		return flattenForm(r.MultipartForm.Value)
	}
	return nil
}

// headerValue looks a header up by canonical name, telling an empty header
// apart from a missing one
func headerValue(h http.Header, name string) (string, bool) {
	vals, ok := h[http.CanonicalHeaderKey(name)]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
