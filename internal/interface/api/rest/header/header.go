package header

import (
	"net/http"
	"strings"
)

// IsApplicationJSONContentType returns true if the content type of the
// request is application/json.
func IsApplicationJSONContentType(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i > -1 {
		contentType = contentType[0:i]
	}
	return contentType == "application/json"
}

// IsMultipartFormDataContentType returns true if the content type of the
// request is multipart/form-data.
func IsMultipartFormDataContentType(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(contentType, "multipart/form-data")
}
