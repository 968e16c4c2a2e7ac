package gemini

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// The hosted endpoint takes raw base64 without the data-URI prefix.
var dataURIPattern = regexp.MustCompile(`^data:(image/(?:png|jpeg|jpg|webp));base64,`)

// DecodeDataURI splits a base64 image data URI into its payload and MIME type.
func DecodeDataURI(uri string) ([]byte, string, error) {
	match := dataURIPattern.FindStringSubmatch(uri)
	if match == nil {
		return nil, "", fmt.Errorf("unsupported image data uri")
	}
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, match[0]))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image payload: %w", err)
	}
	if len(payload) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}
	return payload, match[1], nil
}

// EncodeDataURI wraps raw image bytes back into a data URI.
func EncodeDataURI(payload []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(payload))
}
