package feed

import (
	"encoding/xml"
	"time"
)

// itunesNamespace is the iTunes podcast extension namespace.
const itunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// The XML types below are write-only: the prefixed element names
// (itunes:*) serialize correctly with encoding/xml but would not
// round-trip on decode. That is fine, nothing parses feeds here.

type rss struct {
	XMLName  xml.Name `xml:"rss"`
	Version  string   `xml:"version,attr"`
	ItunesNS string   `xml:"xmlns:itunes,attr"`
	Channel  *channel `xml:"channel"`
}

type channel struct {
	Title         string       `xml:"title"`
	Link          string       `xml:"link,omitempty"`
	Description   string       `xml:"description"`
	Language      string       `xml:"language,omitempty"`
	LastBuildDate string       `xml:"lastBuildDate,omitempty"`
	Author        string       `xml:"itunes:author,omitempty"`
	Explicit      string       `xml:"itunes:explicit"`
	Image         *itunesImage `xml:"itunes:image,omitempty"`
	Items         []*item      `xml:"item"`
}

type itunesImage struct {
	Href string `xml:"href,attr"`
}

type item struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link,omitempty"`
	Description string     `xml:"description,omitempty"`
	GUID        guid       `xml:"guid"`
	PubDate     string     `xml:"pubDate"`
	Enclosure   *enclosure `xml:"enclosure"`
	Duration    string     `xml:"itunes:duration,omitempty"`

	pubTime time.Time `xml:"-"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type enclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}
