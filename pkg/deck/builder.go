package deck

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/slides"
)

// Predefined slide layouts of the presentation service.
const (
	layoutSectionHeader      = "SECTION_HEADER"
	layoutTitleAndTwoColumns = "TITLE_AND_TWO_COLUMNS"
)

// quarterLabelWidth is the fixed width of the borderless textbox holding a
// column label. Wider than any marker so long labels stay centered on it.
const quarterLabelWidth = 200.0

func pt(magnitude float64) slides.Dimension {
	return slides.Dimension{Magnitude: magnitude, Unit: slides.UnitPT}
}

func translate(x, y float64) *slides.Transform {
	return &slides.Transform{ScaleX: 1, ScaleY: 1, TranslateX: x, TranslateY: y, Unit: slides.UnitPT}
}

func themeFill(color string) *slides.ShapeBackgroundFill {
	return &slides.ShapeBackgroundFill{
		SolidFill: &slides.SolidFill{Color: &slides.OpaqueColor{ThemeColor: color}},
	}
}

func transparentOutline() *slides.Outline {
	alpha := 0.0
	return &slides.Outline{OutlineFill: &slides.OutlineFill{SolidFill: &slides.SolidFill{Alpha: &alpha}}}
}

func themeOutline(color string) *slides.Outline {
	return &slides.Outline{
		OutlineFill: &slides.OutlineFill{SolidFill: &slides.SolidFill{Color: &slides.OpaqueColor{ThemeColor: color}}},
	}
}

// newID returns a fresh element identifier. IDs never collide within a run.
func newID() string {
	return uuid.NewString()
}

// NewHeaderSlide builds the batch creating a section-header slide carrying
// only a title. Returns the batch and the new slide's object ID.
func NewHeaderSlide(title string) ([]slides.Request, string) {
	slideID := newID()
	titleID := newID()

	batch := []slides.Request{
		{CreateSlide: &slides.CreateSlide{
			ObjectID:             slideID,
			SlideLayoutReference: &slides.SlideLayoutReference{PredefinedLayout: layoutSectionHeader},
			PlaceholderIDMappings: []slides.PlaceholderIDMapping{{
				ObjectID:          titleID,
				LayoutPlaceholder: &slides.LayoutPlaceholder{Type: "TITLE", Index: 0},
			}},
		}},
		{InsertText: &slides.InsertText{ObjectID: titleID, Text: title}},
	}
	return batch, slideID
}

// NewRoadmapSlide builds the batch creating one skeleton slide: title, left
// header and description panels, the timeline arrow, and a marker plus label
// per configured column. Returns the batch and the new slide's object ID.
//
// Column geometry: columnWidth = (arrowWidth − 2·xPadding) / numColumns, the
// first column starting xPadding right of the arrow origin. Each marker is
// centered on its column's horizontal midpoint and vertically on the arrow.
func NewRoadmapSlide(title string, cfg config.DeckConfig) ([]slides.Request, string) {
	slideID := newID()
	titleID := newID()

	arrowStartX := cfg.LeftHeader.X + cfg.LeftHeader.Width
	arrowStartY := cfg.LeftHeader.Y + cfg.LeftHeader.Height/2

	batch := []slides.Request{
		{CreateSlide: &slides.CreateSlide{
			ObjectID:             slideID,
			SlideLayoutReference: &slides.SlideLayoutReference{PredefinedLayout: layoutTitleAndTwoColumns},
			PlaceholderIDMappings: []slides.PlaceholderIDMapping{{
				ObjectID:          titleID,
				LayoutPlaceholder: &slides.LayoutPlaceholder{Type: "TITLE", Index: 0},
			}},
		}},
		{InsertText: &slides.InsertText{ObjectID: titleID, Text: title}},
	}

	batch = append(batch, leftMainRequests(slideID, cfg.LeftMain)...)
	batch = append(batch, leftHeaderRequests(slideID, title, cfg.LeftHeader)...)
	batch = append(batch, timelineArrowRequests(slideID, arrowStartX, arrowStartY, cfg.TimelineArrow)...)

	columnWidth := (cfg.TimelineArrow.Width - cfg.RoadmapBox.XPadding*2) / float64(len(cfg.Columns))
	columnStartX := arrowStartX + cfg.RoadmapBox.XPadding

	for i, column := range cfg.Columns {
		batch = append(batch, quarterMarkerRequests(
			slideID, column.Label,
			columnStartX+columnWidth*float64(i), columnWidth,
			arrowStartY, cfg.QuarterMarker,
		)...)
	}

	return batch, slideID
}

// leftMainRequests builds the start-aligned descriptive panel. The body text
// is pushed below the header band with leading newlines.
func leftMainRequests(slideID string, cfg config.Panel) []slides.Request {
	id := newID()
	return []slides.Request{
		{CreateShape: &slides.CreateShape{
			ObjectID:  id,
			ShapeType: cfg.ShapeType,
			ElementProperties: slides.ElementProperties{
				PageObjectID: slideID,
				Size:         &slides.Size{Height: pt(cfg.Height), Width: pt(cfg.Width)},
				Transform:    translate(cfg.X, cfg.Y),
			},
		}},
		{UpdateShapeProperties: &slides.UpdateShapeProperties{
			ObjectID: id,
			Fields:   "contentAlignment,outline.outlineFill.solidFill.alpha,shapeBackgroundFill.solidFill.color.themeColor",
			ShapeProperties: slides.ShapeProperties{
				ContentAlignment:    "TOP",
				Outline:             transparentOutline(),
				ShapeBackgroundFill: themeFill(cfg.Color),
			},
		}},
		{InsertText: &slides.InsertText{ObjectID: id, Text: "\n\n\n" + cfg.Text}},
		{UpdateTextStyle: &slides.UpdateTextStyle{
			ObjectID: id,
			Fields:   "fontFamily,fontSize.magnitude,fontSize.unit",
			Style: slides.TextStyle{
				FontFamily: config.DefaultFontFamily,
				FontSize:   ptr(pt(cfg.FontSize)),
			},
		}},
		{UpdateParagraphStyle: &slides.UpdateParagraphStyle{
			ObjectID: id,
			Fields:   "alignment",
			Style:    slides.ParagraphStyle{Alignment: "START"},
		}},
	}
}

// leftHeaderRequests builds the bold, centered category header panel.
func leftHeaderRequests(slideID, title string, cfg config.Panel) []slides.Request {
	id := newID()
	return []slides.Request{
		{CreateShape: &slides.CreateShape{
			ObjectID:  id,
			ShapeType: cfg.ShapeType,
			ElementProperties: slides.ElementProperties{
				PageObjectID: slideID,
				Size:         &slides.Size{Height: pt(cfg.Height), Width: pt(cfg.Width)},
				Transform:    translate(cfg.X, cfg.Y),
			},
		}},
		{UpdateShapeProperties: &slides.UpdateShapeProperties{
			ObjectID: id,
			Fields:   "contentAlignment,outline.outlineFill.solidFill.alpha,shapeBackgroundFill.solidFill.color.themeColor",
			ShapeProperties: slides.ShapeProperties{
				ContentAlignment:    "TOP",
				Outline:             transparentOutline(),
				ShapeBackgroundFill: themeFill(cfg.Color),
			},
		}},
		{InsertText: &slides.InsertText{ObjectID: id, Text: title}},
		{UpdateTextStyle: &slides.UpdateTextStyle{
			ObjectID: id,
			Fields:   "bold,fontFamily,fontSize.magnitude,fontSize.unit,foregroundColor.opaqueColor.themeColor",
			Style: slides.TextStyle{
				Bold:            true,
				FontFamily:      config.DefaultFontFamily,
				FontSize:        ptr(pt(cfg.FontSize)),
				ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{ThemeColor: "LIGHT1"}},
			},
		}},
		{UpdateParagraphStyle: &slides.UpdateParagraphStyle{
			ObjectID: id,
			Fields:   "alignment",
			Style:    slides.ParagraphStyle{Alignment: "CENTER"},
		}},
	}
}

// timelineArrowRequests builds the horizontal timeline with an arrowhead.
func timelineArrowRequests(slideID string, startX, startY float64, cfg config.TimelineArrow) []slides.Request {
	id := newID()
	return []slides.Request{
		{CreateLine: &slides.CreateLine{
			ObjectID:     id,
			LineCategory: "STRAIGHT",
			ElementProperties: slides.ElementProperties{
				PageObjectID: slideID,
				Size:         &slides.Size{Height: pt(1), Width: pt(cfg.Width)},
				Transform:    translate(startX, startY),
			},
		}},
		{UpdateLineProperties: &slides.UpdateLineProperties{
			ObjectID: id,
			Fields:   "endArrow,lineFill.solidFill.color.themeColor,weight",
			LineProperties: slides.LineProperties{
				EndArrow: "FILL_ARROW",
				LineFill: &slides.LineFill{SolidFill: &slides.SolidFill{Color: &slides.OpaqueColor{ThemeColor: cfg.Color}}},
				Weight:   ptr(pt(cfg.Weight)),
			},
		}},
	}
}

// quarterMarkerRequests builds one column's marker shape centered on the
// column midpoint plus the borderless label textbox floating above it.
func quarterMarkerRequests(slideID, label string, columnX, columnWidth, arrowY float64, cfg config.QuarterMarker) []slides.Request {
	markerID := newID()
	labelID := newID()

	return []slides.Request{
		{CreateShape: &slides.CreateShape{
			ObjectID:  markerID,
			ShapeType: cfg.ShapeType,
			ElementProperties: slides.ElementProperties{
				PageObjectID: slideID,
				Size:         &slides.Size{Height: pt(cfg.Height), Width: pt(cfg.Width)},
				Transform: translate(
					columnX+columnWidth/2-cfg.Width/2,
					arrowY-cfg.Height/2,
				),
			},
		}},
		{UpdateShapeProperties: &slides.UpdateShapeProperties{
			ObjectID: markerID,
			Fields:   "outline.outlineFill.solidFill.alpha,shapeBackgroundFill.solidFill.color.themeColor",
			ShapeProperties: slides.ShapeProperties{
				Outline:             transparentOutline(),
				ShapeBackgroundFill: themeFill(cfg.Color),
			},
		}},
		{CreateShape: &slides.CreateShape{
			ObjectID:  labelID,
			ShapeType: "RECTANGLE",
			ElementProperties: slides.ElementProperties{
				PageObjectID: slideID,
				Size:         &slides.Size{Height: pt(cfg.Height), Width: pt(quarterLabelWidth)},
				Transform: translate(
					columnX+columnWidth/2-quarterLabelWidth/2,
					arrowY-cfg.Height*1.75,
				),
			},
		}},
		{UpdateShapeProperties: &slides.UpdateShapeProperties{
			ObjectID: labelID,
			Fields:   "outline.outlineFill.solidFill.alpha,shapeBackgroundFill.solidFill.alpha",
			ShapeProperties: slides.ShapeProperties{
				Outline:             transparentOutline(),
				ShapeBackgroundFill: &slides.ShapeBackgroundFill{SolidFill: &slides.SolidFill{Alpha: ptr(0.0)}},
			},
		}},
		{InsertText: &slides.InsertText{ObjectID: labelID, Text: label}},
		{UpdateTextStyle: &slides.UpdateTextStyle{
			ObjectID: labelID,
			Fields:   "bold,fontFamily,fontSize.magnitude,foregroundColor.opaqueColor.themeColor",
			Style: slides.TextStyle{
				Bold:            true,
				FontFamily:      cfg.Font,
				FontSize:        ptr(pt(cfg.FontSize)),
				ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{ThemeColor: cfg.FontColor}},
			},
		}},
	}
}

// ItemBox carries the logical parameters of one roadmap item box.
type ItemBox struct {
	X, Y, Width float64
	Tagline     string
	Description string // already truncated by the caller
	Link        string
	Beta        bool
}

// NewItemBox builds the batch creating one roadmap item: a rounded rectangle
// at (X, Y), background-filled, outlined, hyperlinked, holding the bold
// tagline followed by the description. Bold styling covers exactly the
// tagline's character range. Beta items get a small badge anchored to the
// box's top-right region. Returns the batch and the box's object ID.
func NewItemBox(pageID string, box ItemBox, cfg config.RoadmapBox) ([]slides.Request, string) {
	id := newID()

	batch := []slides.Request{
		{CreateShape: &slides.CreateShape{
			ObjectID:  id,
			ShapeType: cfg.ShapeType,
			ElementProperties: slides.ElementProperties{
				PageObjectID: pageID,
				Size:         &slides.Size{Height: pt(cfg.Height), Width: pt(box.Width)},
				Transform:    translate(box.X, box.Y),
			},
		}},
		{UpdateShapeProperties: &slides.UpdateShapeProperties{
			ObjectID: id,
			Fields:   "contentAlignment,outline.outlineFill.solidFill.color.themeColor,link.url,shapeBackgroundFill.solidFill.color.themeColor",
			ShapeProperties: slides.ShapeProperties{
				ContentAlignment:    "TOP",
				Outline:             themeOutline(cfg.OutlineColor),
				Link:                &slides.Link{URL: box.Link},
				ShapeBackgroundFill: themeFill(cfg.FillColor),
			},
		}},
		{InsertText: &slides.InsertText{ObjectID: id, Text: box.Tagline + "\n" + box.Description}},
		{UpdateTextStyle: &slides.UpdateTextStyle{
			ObjectID: id,
			Fields:   "bold,fontFamily,fontSize.magnitude,fontSize.unit",
			Style: slides.TextStyle{
				FontFamily: config.DefaultFontFamily,
				FontSize:   ptr(pt(cfg.FontSize)),
			},
		}},
		{UpdateParagraphStyle: &slides.UpdateParagraphStyle{
			ObjectID: id,
			Fields:   "alignment",
			Style:    slides.ParagraphStyle{Alignment: "START"},
		}},
		{UpdateTextStyle: &slides.UpdateTextStyle{
			ObjectID: id,
			Fields:   "bold",
			Style:    slides.TextStyle{Bold: true},
			TextRange: &slides.TextRange{
				StartIndex: ptr(0),
				EndIndex:   ptr(utf8.RuneCountInString(box.Tagline)),
				Type:       "FIXED_RANGE",
			},
		}},
	}

	if box.Beta {
		batch = append(batch, betaBadgeRequests(pageID, box, cfg)...)
	}
	return batch, id
}

// betaBadgeRequests builds the small centered "beta" badge. The badge sits at
// width·6/7 − 2 from the box's left edge with a fixed 2pt vertical inset.
func betaBadgeRequests(pageID string, box ItemBox, cfg config.RoadmapBox) []slides.Request {
	id := newID()
	return []slides.Request{
		{CreateShape: &slides.CreateShape{
			ObjectID:  id,
			ShapeType: "FLOW_CHART_TERMINATOR",
			ElementProperties: slides.ElementProperties{
				PageObjectID: pageID,
				Size:         &slides.Size{Height: pt(cfg.Height / 4.5), Width: pt(box.Width / 7)},
				Transform:    translate(box.X+box.Width*6/7-2, box.Y+2),
			},
		}},
		{UpdateShapeProperties: &slides.UpdateShapeProperties{
			ObjectID: id,
			Fields:   "contentAlignment,outline.outlineFill.solidFill.color.themeColor,shapeBackgroundFill.solidFill.color.themeColor",
			ShapeProperties: slides.ShapeProperties{
				ContentAlignment:    "MIDDLE",
				Outline:             themeOutline(cfg.BetaLabel.OutlineColor),
				ShapeBackgroundFill: themeFill(cfg.BetaLabel.FillColor),
			},
		}},
		{InsertText: &slides.InsertText{ObjectID: id, Text: "beta"}},
		{UpdateTextStyle: &slides.UpdateTextStyle{
			ObjectID: id,
			Fields:   "bold,fontFamily,fontSize.magnitude,fontSize.unit,foregroundColor.opaqueColor.themeColor",
			Style: slides.TextStyle{
				FontFamily:      config.DefaultFontFamily,
				FontSize:        ptr(pt(cfg.BetaLabel.FontSize)),
				ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{ThemeColor: cfg.BetaLabel.FontColor}},
			},
		}},
		{UpdateParagraphStyle: &slides.UpdateParagraphStyle{
			ObjectID: id,
			Fields:   "alignment",
			Style:    slides.ParagraphStyle{Alignment: "CENTER"},
		}},
	}
}

func ptr[T any](v T) *T { return &v }
