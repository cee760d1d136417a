package domain

import (
	"encoding/json"
	"strings"
)

// ContentKind discriminates plain text from attachment references.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentFile  ContentKind = "file"
	ContentVoice ContentKind = "voice"
)

const (
	fileTag  = "[File]"
	voiceTag = "[Voice Note]"
)

// Content is the structured variant Text | FileRef(url) | VoiceRef(url).
// Storage and the legacy wire format keep the tagged-text encoding
// "[File](url)" / "[Voice Note](url)"; parsing happens only at the boundary.
type Content struct {
	Kind ContentKind
	Text string
	URL  string
}

func TextContent(text string) Content {
	return Content{Kind: ContentText, Text: text}
}

func FileContent(url string) Content {
	return Content{Kind: ContentFile, URL: url}
}

func VoiceContent(url string) Content {
	return Content{Kind: ContentVoice, URL: url}
}

// ParseContent decodes the tagged-text convention. Anything that does not
// carry a recognized tag is plain text. The URL is treated as opaque.
func ParseContent(raw string) Content {
	if url, ok := cutTag(raw, voiceTag); ok {
		return VoiceContent(url)
	}
	if url, ok := cutTag(raw, fileTag); ok {
		return FileContent(url)
	}
	return TextContent(raw)
}

func cutTag(raw, tag string) (string, bool) {
	rest, ok := strings.CutPrefix(raw, tag+"(")
	if !ok {
		return "", false
	}
	url, ok := strings.CutSuffix(rest, ")")
	if !ok || url == "" {
		return "", false
	}
	return url, true
}

// Encode renders the storage/wire form.
func (c Content) Encode() string {
	switch c.Kind {
	case ContentFile:
		return fileTag + "(" + c.URL + ")"
	case ContentVoice:
		return voiceTag + "(" + c.URL + ")"
	default:
		return c.Text
	}
}

// IsEmpty reports whether the content carries nothing to deliver.
func (c Content) IsEmpty() bool {
	switch c.Kind {
	case ContentText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return c.URL == ""
	}
}

type contentJSON struct {
	Kind ContentKind `json:"kind"`
	Text string      `json:"text,omitempty"`
	URL  string      `json:"url,omitempty"`
}

// MarshalJSON emits the tagged-text wire form so legacy clients keep parsing
// attachments from the string itself.
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Encode())
}

// UnmarshalJSON accepts both the structured form and a bare tagged string,
// which is what legacy clients send.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*c = ParseContent(raw)
		return nil
	}

	var cj contentJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	*c = Content{Kind: cj.Kind, Text: cj.Text, URL: cj.URL}
	if c.Kind == "" {
		c.Kind = ContentText
	}
	return nil
}
