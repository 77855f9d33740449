package genai

import (
	"regexp"
	"strings"
)

var dataURIRegex = regexp.MustCompile(`^data:([^;]+);base64,`)

// BlobFromDataURI converts a data: URI (or a bare base64 string) into an
// inline blob. The media type embedded in the URI wins over declaredMime.
// Returns false when no payload is present.
func BlobFromDataURI(dataURI, declaredMime string) (Blob, bool) {
	dataURI = strings.TrimSpace(dataURI)
	if dataURI == "" {
		return Blob{}, false
	}

	mime := strings.TrimSpace(declaredMime)
	if matches := dataURIRegex.FindStringSubmatch(dataURI); len(matches) == 2 {
		mime = matches[1]
	}
	if mime == "" {
		mime = "image/png"
	}

	payload := stripDataURIPrefix(dataURI)
	if payload == "" {
		return Blob{}, false
	}

	return Blob{MIMEType: mime, Data: payload}, true
}

func stripDataURIPrefix(value string) string {
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		return value[idx+1:]
	}
	return value
}
