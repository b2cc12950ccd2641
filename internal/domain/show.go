// Package domain contains the core data types for the podfeed server.
package domain

import "time"

// Show is a podcast series from the show catalog.
// The catalog is the source of truth; the server never mutates shows.
type Show struct {
	// ID is the stable numeric identifier assigned by the catalog.
	ID int `json:"id" toml:"id"`
	// Title is the display title and the source of the feed slug.
	Title string `json:"title" toml:"title"`
	// Description is shown in feed readers.
	Description string `json:"description,omitempty" toml:"description"`
	// Author is the show-level author/owner name.
	Author string `json:"author,omitempty" toml:"author"`
	// Website is the show's homepage.
	Website string `json:"website,omitempty" toml:"website"`
	// ImageURL points to the show's cover artwork.
	ImageURL string `json:"image_url,omitempty" toml:"image_url"`
	// Language is an RFC 5646 language tag (e.g. "no", "en-us").
	Language string `json:"language,omitempty" toml:"language"`
	// Explicit marks the show as explicit in iTunes directories.
	Explicit bool `json:"explicit,omitempty" toml:"explicit"`

	// Episodes in reverse chronological order as listed in the catalog.
	Episodes []*Episode `json:"episodes,omitempty" toml:"episodes"`
}

// Episode is a single entry in a show's feed.
type Episode struct {
	// GUID is the catalog's stable identifier for the episode.
	GUID string `json:"guid" toml:"guid"`
	// Title is the episode title.
	Title string `json:"title" toml:"title"`
	// Description is the episode show notes.
	Description string `json:"description,omitempty" toml:"description"`
	// PublishedAt is the publication timestamp.
	PublishedAt time.Time `json:"published_at" toml:"published_at"`
	// SoundURL is the original (upstream) audio URL.
	SoundURL string `json:"sound_url" toml:"sound_url"`
	// ArticleURL is the original URL of the accompanying article, if any.
	ArticleURL string `json:"article_url,omitempty" toml:"article_url"`
	// DurationSec is the audio duration in seconds, 0 if unknown.
	DurationSec int `json:"duration_sec,omitempty" toml:"duration_sec"`
	// ByteSize is the enclosure size in bytes, 0 if unknown.
	ByteSize int64 `json:"byte_size,omitempty" toml:"byte_size"`

	// Show is the owning show, set by the catalog after load.
	Show *Show `json:"-" toml:"-"`
}
