package storage

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const (
	MaxImageBytes     = 5 << 20
	maxImageURLLength = 2048
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var allowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

// DetectImageType sniffs the first bytes of an upload and returns its MIME
// type if it is one of the accepted image formats.
func DetectImageType(head []byte) (string, error) {
	ct := http.DetectContentType(head)
	if _, ok := allowedImageTypes[ct]; !ok {
		return "", errors.New("only JPEG, PNG, WebP and GIF images are accepted")
	}
	return ct, nil
}

// ExtensionFor returns the canonical file extension for an accepted MIME type.
func ExtensionFor(contentType string) string {
	return allowedImageTypes[contentType]
}

// ValidateImageURL checks an externally hosted image URL: https only, no
// script-ish payloads, and an image extension unless the host is our own bucket.
func ValidateImageURL(imageURL, ownHost string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return errors.New("image URL cannot be empty")
	}
	if len(imageURL) > maxImageURLLength {
		return errors.New("image URL too long (max 2048 characters)")
	}

	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Host == "" {
		return errors.New("invalid image URL format")
	}
	if parsed.Scheme != "https" {
		return errors.New("only HTTPS image URLs are allowed")
	}

	lower := strings.ToLower(imageURL)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") || strings.Contains(lower, "onerror=") {
		return errors.New("unsafe image URL detected")
	}

	if ownHost != "" && strings.EqualFold(parsed.Host, ownHost) {
		return nil
	}
	lowerPath := strings.ToLower(parsed.Path)
	for _, ext := range allowedImageExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return nil
		}
	}
	return errors.New("image URL must point to a .png, .jpg, .webp or .gif file")
}

// PublicHost extracts the host of the configured public bucket URL.
func PublicHost(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	return u.Host
}
