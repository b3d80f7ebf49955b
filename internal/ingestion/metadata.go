package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata records where a job posting came from and a digest of its
// cleaned text, so a stored scan can be traced back to its input.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"`          // RFC3339
	Hash      string `json:"hash"`               // SHA256 hex digest of the cleaned text
	Platform  string `json:"platform,omitempty"` // Detected job board platform
}

// NewMetadata creates a Metadata for content ingested now.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
