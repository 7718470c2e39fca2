// Package slides defines the declarative drawing operations understood by the
// presentation service and the client that executes them.
//
// The layout engine emits [Request] values; it never interprets them. Each
// request creates or mutates one element, addressed by a caller-chosen object
// ID, and a batch of requests is applied transactionally by
// [Client.BatchUpdate].
package slides

// Unit for all magnitudes emitted by the layout engine.
const UnitPT = "PT"

// Request is one drawing operation. Exactly one member is set.
type Request struct {
	CreateSlide           *CreateSlide           `json:"createSlide,omitempty"`
	CreateShape           *CreateShape           `json:"createShape,omitempty"`
	CreateLine            *CreateLine            `json:"createLine,omitempty"`
	InsertText            *InsertText            `json:"insertText,omitempty"`
	UpdateShapeProperties *UpdateShapeProperties `json:"updateShapeProperties,omitempty"`
	UpdateLineProperties  *UpdateLineProperties  `json:"updateLineProperties,omitempty"`
	UpdateTextStyle       *UpdateTextStyle       `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle  *UpdateParagraphStyle  `json:"updateParagraphStyle,omitempty"`
}

// CreateSlide appends a slide based on a predefined layout.
type CreateSlide struct {
	ObjectID              string                 `json:"objectId"`
	SlideLayoutReference  *SlideLayoutReference  `json:"slideLayoutReference,omitempty"`
	PlaceholderIDMappings []PlaceholderIDMapping `json:"placeholderIdMappings,omitempty"`
}

type SlideLayoutReference struct {
	PredefinedLayout string `json:"predefinedLayout"`
}

// PlaceholderIDMapping assigns a known object ID to a layout placeholder so
// that follow-up requests (e.g. title text) can reference it.
type PlaceholderIDMapping struct {
	ObjectID          string             `json:"objectId"`
	LayoutPlaceholder *LayoutPlaceholder `json:"layoutPlaceholder,omitempty"`
}

type LayoutPlaceholder struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// CreateShape places a new shape on a page.
type CreateShape struct {
	ObjectID          string            `json:"objectId"`
	ShapeType         string            `json:"shapeType"`
	ElementProperties ElementProperties `json:"elementProperties"`
}

// CreateLine places a new line on a page.
type CreateLine struct {
	ObjectID          string            `json:"objectId"`
	LineCategory      string            `json:"lineCategory"`
	ElementProperties ElementProperties `json:"elementProperties"`
}

// ElementProperties positions and sizes a page element.
type ElementProperties struct {
	PageObjectID string     `json:"pageObjectId"`
	Size         *Size      `json:"size,omitempty"`
	Transform    *Transform `json:"transform,omitempty"`
}

type Size struct {
	Height Dimension `json:"height"`
	Width  Dimension `json:"width"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// Transform is an affine transform; the layout engine only ever emits
// identity scale plus a translation.
type Transform struct {
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Unit       string  `json:"unit"`
}

// InsertText inserts text into a shape or placeholder.
type InsertText struct {
	ObjectID       string `json:"objectId"`
	InsertionIndex int    `json:"insertionIndex"`
	Text           string `json:"text"`
}

// UpdateShapeProperties mutates the fields named by the Fields mask.
type UpdateShapeProperties struct {
	ObjectID        string          `json:"objectId"`
	Fields          string          `json:"fields"`
	ShapeProperties ShapeProperties `json:"shapeProperties"`
}

type ShapeProperties struct {
	ContentAlignment    string               `json:"contentAlignment,omitempty"`
	Outline             *Outline             `json:"outline,omitempty"`
	ShapeBackgroundFill *ShapeBackgroundFill `json:"shapeBackgroundFill,omitempty"`
	Link                *Link                `json:"link,omitempty"`
}

type Outline struct {
	OutlineFill *OutlineFill `json:"outlineFill,omitempty"`
}

type OutlineFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`
}

type ShapeBackgroundFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`
}

// SolidFill carries either a theme color, an alpha, or both. Alpha is a
// pointer so an explicit 0 (fully transparent) survives marshaling.
type SolidFill struct {
	Alpha *float64     `json:"alpha,omitempty"`
	Color *OpaqueColor `json:"color,omitempty"`
}

type OpaqueColor struct {
	ThemeColor string `json:"themeColor,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

// UpdateLineProperties mutates the fields named by the Fields mask.
type UpdateLineProperties struct {
	ObjectID       string         `json:"objectId"`
	Fields         string         `json:"fields"`
	LineProperties LineProperties `json:"lineProperties"`
}

type LineProperties struct {
	EndArrow string     `json:"endArrow,omitempty"`
	LineFill *LineFill  `json:"lineFill,omitempty"`
	Weight   *Dimension `json:"weight,omitempty"`
}

type LineFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`
}

// UpdateTextStyle restyles a character range within an element.
type UpdateTextStyle struct {
	ObjectID  string     `json:"objectId"`
	Fields    string     `json:"fields"`
	Style     TextStyle  `json:"style"`
	TextRange *TextRange `json:"textRange,omitempty"`
}

type TextStyle struct {
	Bold            bool           `json:"bold,omitempty"`
	FontFamily      string         `json:"fontFamily,omitempty"`
	FontSize        *Dimension     `json:"fontSize,omitempty"`
	ForegroundColor *OptionalColor `json:"foregroundColor,omitempty"`
}

type OptionalColor struct {
	OpaqueColor *OpaqueColor `json:"opaqueColor,omitempty"`
}

// TextRange addresses a character span. StartIndex/EndIndex are pointers so
// an explicit 0 survives marshaling with FIXED_RANGE.
type TextRange struct {
	StartIndex *int   `json:"startIndex,omitempty"`
	EndIndex   *int   `json:"endIndex,omitempty"`
	Type       string `json:"type"`
}

// UpdateParagraphStyle restyles the paragraphs of an element.
type UpdateParagraphStyle struct {
	ObjectID string         `json:"objectId"`
	Fields   string         `json:"fields"`
	Style    ParagraphStyle `json:"style"`
}

type ParagraphStyle struct {
	Alignment string `json:"alignment,omitempty"`
}
