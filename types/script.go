package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Script is the structured narration script returned by the script generator.
type Script struct {
	Title         string   `json:"title"`
	Hook          string   `json:"hook"`
	Script        string   `json:"script"`
	KeyPoints     []string `json:"key_points"`
	Hashtags      []string `json:"hashtags"`
	ThumbnailText string   `json:"thumbnail_text"`
}

// Article represents a single news article with metadata and extracted content.
type Article struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	PublishedAt     time.Time `json:"published_at"`
	FetchedAt       time.Time `json:"fetched_at"`
	Summary         string    `json:"summary"`
	FullContentText string    `json:"full_content_text,omitempty"`
	Excerpt         string    `json:"excerpt,omitempty"`
	ExtractionError string    `json:"extraction_error,omitempty"`
}

// Quote is a single market data point used as script context.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency,omitempty"`
}

// GenerateID produces a stable identifier from a URL or topic string.
func GenerateID(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:16]
}
