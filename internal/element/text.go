// Package element builds entity descriptors for the concrete element
// kinds. Builders only set timing and property metadata; decoding,
// glyph rasterization and pixel work belong to the external renderer.
package element

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/ivlev/videoplan/internal/timeline"
)

// Alignment of multi-line text.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Text is a text entity plus its text-specific payload.
type Text struct {
	*timeline.Entity

	Content     string
	Size        int
	Color       color.RGBA
	Alignment   Alignment
	LineSpacing int
}

// NewText creates a text entity. The default fill is white, matching
// the renderer's default palette.
func NewText(content string, size int) *Text {
	return &Text{
		Entity:    timeline.NewEntity(timeline.KindText, "text:"+content),
		Content:   content,
		Size:      size,
		Color:     colornames.White,
		Alignment: AlignLeft,
	}
}

// SetColor sets the text fill color.
func (t *Text) SetColor(c color.RGBA) *Text {
	t.Color = c
	return t
}

// SetAlignment sets the multi-line alignment.
func (t *Text) SetAlignment(a Alignment) *Text {
	if a == AlignLeft || a == AlignCenter || a == AlignRight {
		t.Alignment = a
	}
	return t
}

// SetLineSpacing sets the extra pixels between lines.
func (t *Text) SetLineSpacing(px int) *Text {
	t.LineSpacing = px
	return t
}
