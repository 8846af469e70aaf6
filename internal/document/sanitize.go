package document

import (
	"html/template"
	"net/url"
	"regexp"
	"strings"
)

// imageDataRe matches the only data: payloads allowed in an image source.
var imageDataRe = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp|svg\+xml);base64,`)

// SafeImageURL allow-lists an image source. Only http(s) URLs and base64
// image data URIs pass; everything else (javascript:, data:text/html, file:,
// relative paths) renders as empty. The returned value is a template.URL,
// which html/template will not escape further.
func SafeImageURL(raw string) template.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if imageDataRe.MatchString(lower) {
		return template.URL(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return template.URL(raw)
	}
	return ""
}
