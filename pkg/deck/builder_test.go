package deck

import (
	"strings"
	"testing"

	"github.com/matzehuels/roadmapper/pkg/slides"
)

// createdID returns the object ID a request creates, or "" if it is not a
// creation request.
func createdID(r slides.Request) string {
	switch {
	case r.CreateSlide != nil:
		return r.CreateSlide.ObjectID
	case r.CreateShape != nil:
		return r.CreateShape.ObjectID
	case r.CreateLine != nil:
		return r.CreateLine.ObjectID
	}
	return ""
}

// referencedID returns the object ID a mutation request refers to.
func referencedID(r slides.Request) string {
	switch {
	case r.InsertText != nil:
		return r.InsertText.ObjectID
	case r.UpdateShapeProperties != nil:
		return r.UpdateShapeProperties.ObjectID
	case r.UpdateLineProperties != nil:
		return r.UpdateLineProperties.ObjectID
	case r.UpdateTextStyle != nil:
		return r.UpdateTextStyle.ObjectID
	case r.UpdateParagraphStyle != nil:
		return r.UpdateParagraphStyle.ObjectID
	}
	return ""
}

// assertCreationsPrecedeReferences checks that every mutated element was
// created earlier in the same batch. Placeholder IDs declared by createSlide
// mappings count as created.
func assertCreationsPrecedeReferences(t *testing.T, batch []slides.Request) {
	t.Helper()
	created := make(map[string]bool)
	for i, r := range batch {
		if id := createdID(r); id != "" {
			created[id] = true
		}
		if r.CreateSlide != nil {
			for _, m := range r.CreateSlide.PlaceholderIDMappings {
				created[m.ObjectID] = true
			}
		}
		if id := referencedID(r); id != "" && !created[id] {
			t.Errorf("request %d references %s before its creation", i, id)
		}
	}
}

func TestNewHeaderSlide(t *testing.T) {
	batch, slideID := NewHeaderSlide("Search")

	if len(batch) != 2 {
		t.Fatalf("len(batch) = %d, want 2", len(batch))
	}

	create := batch[0].CreateSlide
	if create == nil {
		t.Fatal("first request is not createSlide")
	}
	if create.ObjectID != slideID {
		t.Errorf("returned slide ID %s != created %s", slideID, create.ObjectID)
	}
	if create.SlideLayoutReference.PredefinedLayout != "SECTION_HEADER" {
		t.Errorf("layout = %s, want SECTION_HEADER", create.SlideLayoutReference.PredefinedLayout)
	}

	insert := batch[1].InsertText
	if insert == nil {
		t.Fatal("second request is not insertText")
	}
	if insert.Text != "Search" {
		t.Errorf("title text = %q, want Search", insert.Text)
	}
	if insert.ObjectID != create.PlaceholderIDMappings[0].ObjectID {
		t.Error("title text does not target the mapped title placeholder")
	}

	assertCreationsPrecedeReferences(t, batch)
}

func TestNewRoadmapSlide_Structure(t *testing.T) {
	cfg := testDeckConfig()
	batch, slideID := NewRoadmapSlide("Search", cfg)

	if batch[0].CreateSlide == nil || batch[0].CreateSlide.ObjectID != slideID {
		t.Fatal("first request must create the slide")
	}
	if got := batch[0].CreateSlide.SlideLayoutReference.PredefinedLayout; got != "TITLE_AND_TWO_COLUMNS" {
		t.Errorf("layout = %s, want TITLE_AND_TWO_COLUMNS", got)
	}

	var shapes, lines, markers, labels int
	for _, r := range batch {
		if r.CreateShape != nil {
			shapes++
			if r.CreateShape.ElementProperties.PageObjectID != slideID {
				t.Errorf("shape %s created on page %s, want %s",
					r.CreateShape.ObjectID, r.CreateShape.ElementProperties.PageObjectID, slideID)
			}
			switch {
			case r.CreateShape.ShapeType == cfg.QuarterMarker.ShapeType:
				markers++
			case r.CreateShape.ElementProperties.Size.Width.Magnitude == quarterLabelWidth:
				labels++
			}
		}
		if r.CreateLine != nil {
			lines++
		}
	}

	// left header + left main + per column (marker + label)
	if want := 2 + 2*len(cfg.Columns); shapes != want {
		t.Errorf("created %d shapes, want %d", shapes, want)
	}
	if lines != 1 {
		t.Errorf("created %d lines, want 1 (timeline arrow)", lines)
	}
	if markers != len(cfg.Columns) {
		t.Errorf("created %d markers, want %d", markers, len(cfg.Columns))
	}
	if labels != len(cfg.Columns) {
		t.Errorf("created %d column labels, want %d", labels, len(cfg.Columns))
	}

	assertCreationsPrecedeReferences(t, batch)
}

func TestNewRoadmapSlide_MarkerGeometry(t *testing.T) {
	cfg := testDeckConfig()
	batch, _ := NewRoadmapSlide("Search", cfg)

	arrowStartX := cfg.LeftHeader.X + cfg.LeftHeader.Width       // 160
	arrowStartY := cfg.LeftHeader.Y + cfg.LeftHeader.Height/2    // 100
	columnWidth := (cfg.TimelineArrow.Width - cfg.RoadmapBox.XPadding*2) / float64(len(cfg.Columns))
	columnStartX := arrowStartX + cfg.RoadmapBox.XPadding

	var markerXs []float64
	for _, r := range batch {
		if r.CreateShape != nil && r.CreateShape.ShapeType == cfg.QuarterMarker.ShapeType {
			tr := r.CreateShape.ElementProperties.Transform
			markerXs = append(markerXs, tr.TranslateX)
			if want := arrowStartY - cfg.QuarterMarker.Height/2; tr.TranslateY != want {
				t.Errorf("marker Y = %v, want %v (centered on arrow)", tr.TranslateY, want)
			}
		}
	}

	for i, x := range markerXs {
		want := columnStartX + columnWidth*float64(i) + columnWidth/2 - cfg.QuarterMarker.Width/2
		if x != want {
			t.Errorf("marker %d X = %v, want %v", i, x, want)
		}
	}
}

func TestNewRoadmapSlide_ArrowGeometry(t *testing.T) {
	cfg := testDeckConfig()
	batch, _ := NewRoadmapSlide("Search", cfg)

	for _, r := range batch {
		if r.CreateLine == nil {
			continue
		}
		tr := r.CreateLine.ElementProperties.Transform
		if want := cfg.LeftHeader.X + cfg.LeftHeader.Width; tr.TranslateX != want {
			t.Errorf("arrow X = %v, want %v", tr.TranslateX, want)
		}
		if want := cfg.LeftHeader.Y + cfg.LeftHeader.Height/2; tr.TranslateY != want {
			t.Errorf("arrow Y = %v, want %v", tr.TranslateY, want)
		}
		if got := r.CreateLine.ElementProperties.Size.Width.Magnitude; got != cfg.TimelineArrow.Width {
			t.Errorf("arrow width = %v, want %v", got, cfg.TimelineArrow.Width)
		}
		return
	}
	t.Fatal("no createLine request in batch")
}

func TestNewItemBox_TextAndBoldRange(t *testing.T) {
	cfg := testDeckConfig().RoadmapBox
	box := ItemBox{
		X: 375, Y: 120, Width: 175,
		Tagline:     "Faster search",
		Description: "Rebuild the index pipeline.",
		Link:        "https://example.atlassian.net/browse/ROAD-1",
	}

	batch, id := NewItemBox("slide-1", box, cfg)

	var insert *slides.InsertText
	var boldRange *slides.UpdateTextStyle
	for i := range batch {
		if batch[i].InsertText != nil {
			insert = batch[i].InsertText
		}
		if ts := batch[i].UpdateTextStyle; ts != nil && ts.TextRange != nil {
			boldRange = ts
		}
	}

	if insert == nil {
		t.Fatal("no insertText request")
	}
	if insert.ObjectID != id {
		t.Errorf("text inserted into %s, want %s", insert.ObjectID, id)
	}
	if want := "Faster search\nRebuild the index pipeline."; insert.Text != want {
		t.Errorf("text = %q, want %q", insert.Text, want)
	}

	if boldRange == nil {
		t.Fatal("no ranged updateTextStyle request")
	}
	if !boldRange.Style.Bold {
		t.Error("ranged style is not bold")
	}
	if *boldRange.TextRange.StartIndex != 0 {
		t.Errorf("bold range start = %d, want 0", *boldRange.TextRange.StartIndex)
	}
	if want := len([]rune(box.Tagline)); *boldRange.TextRange.EndIndex != want {
		t.Errorf("bold range end = %d, want %d (tagline only)", *boldRange.TextRange.EndIndex, want)
	}
	if boldRange.TextRange.Type != "FIXED_RANGE" {
		t.Errorf("range type = %s, want FIXED_RANGE", boldRange.TextRange.Type)
	}

	assertCreationsPrecedeReferences(t, batch)
}

func TestNewItemBox_Hyperlink(t *testing.T) {
	cfg := testDeckConfig().RoadmapBox
	box := ItemBox{Width: 175, Tagline: "t", Link: "https://example.atlassian.net/browse/ROAD-9"}

	batch, id := NewItemBox("slide-1", box, cfg)
	for _, r := range batch {
		p := r.UpdateShapeProperties
		if p == nil || p.ObjectID != id || p.ShapeProperties.Link == nil {
			continue
		}
		if p.ShapeProperties.Link.URL != box.Link {
			t.Errorf("link = %s, want %s", p.ShapeProperties.Link.URL, box.Link)
		}
		if !strings.Contains(p.Fields, "link.url") {
			t.Errorf("fields mask %q does not include link.url", p.Fields)
		}
		return
	}
	t.Fatal("no shape-properties request carrying the hyperlink")
}

func TestNewItemBox_BetaBadge(t *testing.T) {
	cfg := testDeckConfig().RoadmapBox
	box := ItemBox{X: 100, Y: 200, Width: 175, Tagline: "t", Link: "https://x", Beta: true}

	batch, boxID := NewItemBox("slide-1", box, cfg)

	var badge *slides.CreateShape
	for _, r := range batch {
		if r.CreateShape != nil && r.CreateShape.ShapeType == "FLOW_CHART_TERMINATOR" {
			badge = r.CreateShape
		}
	}
	if badge == nil {
		t.Fatal("beta item has no badge shape")
	}
	if badge.ObjectID == boxID {
		t.Error("badge must be a separate element")
	}

	tr := badge.ElementProperties.Transform
	// 100 + 175*6/7 - 2 = 248
	if want := 248.0; tr.TranslateX != want {
		t.Errorf("badge X = %v, want %v", tr.TranslateX, want)
	}
	if want := 202.0; tr.TranslateY != want {
		t.Errorf("badge Y = %v, want %v", tr.TranslateY, want)
	}
	if want := 175.0 / 7; badge.ElementProperties.Size.Width.Magnitude != want {
		t.Errorf("badge width = %v, want %v", badge.ElementProperties.Size.Width.Magnitude, want)
	}
	if want := 50.0 / 4.5; badge.ElementProperties.Size.Height.Magnitude != want {
		t.Errorf("badge height = %v, want %v", badge.ElementProperties.Size.Height.Magnitude, want)
	}
}

func TestNewItemBox_NoBadgeWithoutBeta(t *testing.T) {
	cfg := testDeckConfig().RoadmapBox
	batch, _ := NewItemBox("slide-1", ItemBox{Width: 175, Tagline: "t", Link: "https://x"}, cfg)

	for _, r := range batch {
		if r.CreateShape != nil && r.CreateShape.ShapeType == "FLOW_CHART_TERMINATOR" {
			t.Fatal("non-beta item got a badge")
		}
	}
}

func TestBuilders_UniqueElementIDs(t *testing.T) {
	cfg := testDeckConfig()

	seen := make(map[string]bool)
	record := func(batch []slides.Request) {
		for _, r := range batch {
			if id := createdID(r); id != "" {
				if seen[id] {
					t.Errorf("element ID %s created twice", id)
				}
				seen[id] = true
			}
		}
	}

	for _, category := range []string{"Search", "Billing"} {
		header, _ := NewHeaderSlide(category)
		record(header)
		skeleton, _ := NewRoadmapSlide(category, cfg)
		record(skeleton)
	}
	items, _ := NewItemBox("slide-1", ItemBox{Width: 175, Tagline: "t", Link: "https://x", Beta: true}, cfg.RoadmapBox)
	record(items)

	if len(seen) == 0 {
		t.Fatal("no creation requests recorded")
	}
}
