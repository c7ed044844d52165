package frontend

import (
	"fmt"
	"html/template"

	"github.com/pankajk/Wound-Care/internal/analysis"
)

// ResultView is the deterministic projection of an analysis result into everything the
// results template needs: severity banner, metrics summary, categorized features,
// labeled visual artifacts and the formatted narrative. Building it never fails;
// absent response fields degrade to zeros and placeholders.
type ResultView struct {
	Filename     string
	Severity     analysis.Severity
	Score        float64
	ScoreDisplay string

	DeepskinFailed bool
	DeepskinError  string

	Metrics       []MetricRow
	FeatureGroups []FeatureGroup
	Artifacts     []Artifact

	HasNarrative    bool
	NarrativeFailed bool
	NarrativeError  string
	Narrative       template.HTML
	NarrativeModel  string
	NarrativeTime   string
}

type MetricRow struct {
	Label string
	Value string
}

type FeatureGroup struct {
	Category string
	Features []analysis.Feature
}

// Artifact is one labeled server-rendered raster (mask or visualization) as a data URI.
type Artifact struct {
	Label   string
	DataURI template.URL
}

var maskLabels = []struct{ key, label, mime string }{
	{"wound_mask", "Wound Mask", "image/png"},
	{"peri_wound_mask", "Peri-Wound Mask", "image/png"},
	{"body_mask", "Body Mask", "image/png"},
	{"segmentation", "Segmentation", "image/png"},
}

var visualizationLabels = []struct{ key, label, mime string }{
	{"wound_outline", "Wound Outline", "image/jpeg"},
	{"combined_outline", "Combined Outline", "image/jpeg"},
	{"wound_only", "Wound Only", "image/jpeg"},
	{"heatmap", "Heatmap", "image/jpeg"},
	{"overlay", "Overlay", "image/jpeg"},
}

// BuildResultView projects a Result into its renderable form.
func BuildResultView(result *analysis.Result) ResultView {
	view := ResultView{Filename: result.Filename}

	deepskin := result.Deepskin
	view.Severity = deepskin.EffectiveSeverity()
	view.Score = result.Score()
	view.ScoreDisplay = fmt.Sprintf("%.1f / 32", view.Score)

	if result.DeepskinFailed() {
		view.DeepskinFailed = true
		view.DeepskinError = deepskin.ErrorMessage()
	}

	if deepskin != nil {
		view.Metrics = buildMetricRows(deepskin)
		view.FeatureGroups = buildFeatureGroups(deepskin.Features)
		view.Artifacts = buildArtifacts(deepskin)
	}

	if gemini := result.Gemini; gemini != nil {
		view.HasNarrative = true
		if gemini.Success {
			view.Narrative = analysis.FormatNarrative(gemini.Analysis)
			view.NarrativeModel = gemini.ModelUsed
			view.NarrativeTime = gemini.Timestamp
		} else {
			view.NarrativeFailed = true
			view.NarrativeError = gemini.Error
			if view.NarrativeError == "" {
				view.NarrativeError = gemini.Note
			}
		}
	}

	return view
}

func buildMetricRows(deepskin *analysis.DeepskinResult) []MetricRow {
	metrics := deepskin.WoundMetrics
	raw := deepskin.Raw
	return []MetricRow{
		{"Wound Area", fmt.Sprintf("%d px (%.2f%%)", metrics.WoundAreaPixels, metrics.WoundAreaPercentage)},
		{"Peri-Wound Area", fmt.Sprintf("%d px (%.2f%%)", metrics.PeriAreaPixels, metrics.PeriAreaPercentage)},
		{"Wound Perimeter", fmt.Sprintf("%d px", metrics.WoundPerimeterPixels)},
		{"Estimated Diameter", fmt.Sprintf("%.2f px", metrics.EstimatedDiameterPixels)},
		{"Bounding Box", fmt.Sprintf("%d × %d px", metrics.BoundingBox.Width, metrics.BoundingBox.Height)},
		{"Image Dimensions", fmt.Sprintf("%d × %d px", raw.ImageDimensions.Width, raw.ImageDimensions.Height)},
		{"Body Area", fmt.Sprintf("%d px", raw.BodyAreaPixels)},
	}
}

func buildFeatureGroups(features map[string]any) []FeatureGroup {
	grouped := analysis.CategorizeFeatures(features)

	var groups []FeatureGroup
	for _, category := range analysis.CategoryOrder {
		if list := grouped[category]; len(list) > 0 {
			groups = append(groups, FeatureGroup{Category: category, Features: list})
		}
	}
	return groups
}

func buildArtifacts(deepskin *analysis.DeepskinResult) []Artifact {
	var artifacts []Artifact
	for _, m := range visualizationLabels {
		if encoded := deepskin.Visualizations[m.key]; encoded != "" {
			artifacts = append(artifacts, Artifact{
				Label:   m.label,
				DataURI: template.URL("data:" + m.mime + ";base64," + encoded),
			})
		}
	}
	for _, m := range maskLabels {
		if encoded := deepskin.Masks[m.key]; encoded != "" {
			artifacts = append(artifacts, Artifact{
				Label:   m.label,
				DataURI: template.URL("data:" + m.mime + ";base64," + encoded),
			})
		}
	}
	return artifacts
}
