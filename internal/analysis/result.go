package analysis

// Result is the parsed response of the remote /analyze endpoint. Every field may be
// absent in the wire payload; zero values render as placeholders downstream.
type Result struct {
	Filename string          `json:"filename"`
	Deepskin *DeepskinResult `json:"deepskin"`
	Gemini   *GeminiResult   `json:"gemini"`
}

// DeepskinResult carries the segmentation and scoring portion of the response.
type DeepskinResult struct {
	Success       bool           `json:"success"`
	Error         string         `json:"error,omitempty"`
	PWATScore     float64        `json:"pwat_score"`
	PWATSeverity  *Severity      `json:"pwat_severity,omitempty"`
	WoundDetected bool           `json:"wound_detected"`
	WoundMetrics  WoundMetrics   `json:"wound_metrics"`
	Raw           RawMetrics     `json:"raw"`
	Features      map[string]any `json:"features"`

	// Base64 PNG masks and base64 JPEG visualizations.
	Masks          map[string]string `json:"masks"`
	Visualizations map[string]string `json:"visualizations"`
}

// GeminiResult carries the generative narrative portion of the response.
type GeminiResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Note      string `json:"note,omitempty"`
	ModelUsed string `json:"model_used,omitempty"`
	Analysis  string `json:"analysis,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Severity is the discrete classification of a PWAT score.
type Severity struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type WoundMetrics struct {
	WoundAreaPixels         int         `json:"wound_area_pixels"`
	WoundAreaPercentage     float64     `json:"wound_area_percentage"`
	PeriAreaPixels          int         `json:"peri_area_pixels"`
	PeriAreaPercentage      float64     `json:"peri_area_percentage"`
	WoundPerimeterPixels    int         `json:"wound_perimeter_pixels"`
	EstimatedDiameterPixels float64     `json:"estimated_diameter_pixels"`
	BoundingBox             BoundingBox `json:"bounding_box"`
}

type BoundingBox struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type RawMetrics struct {
	ImageDimensions Dimensions `json:"image_dimensions"`
	BodyAreaPixels  int        `json:"body_area_pixels"`
	WoundAreaPixels int        `json:"wound_area_pixels"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Score returns the PWAT score or zero when the deepskin sub-result is missing.
func (r *Result) Score() float64 {
	if r == nil || r.Deepskin == nil {
		return 0
	}
	return r.Deepskin.PWATScore
}

// ErrorMessage returns the sub-result's error text, tolerating a missing sub-result.
func (d *DeepskinResult) ErrorMessage() string {
	if d == nil {
		return "no result returned"
	}
	return d.Error
}

// DeepskinFailed reports whether the deepskin sub-result is present but failed.
func (r *Result) DeepskinFailed() bool {
	return r != nil && r.Deepskin != nil && !r.Deepskin.Success
}

// NarrativeFailed reports whether the narrative sub-result is present but failed.
func (r *Result) NarrativeFailed() bool {
	return r != nil && r.Gemini != nil && !r.Gemini.Success
}

// PartialErrors lists the sub-results that reported an internal failure. A partial
// failure never blocks rendering of the other sub-result.
func (r *Result) PartialErrors() []*PartialResultError {
	var errs []*PartialResultError
	if r.DeepskinFailed() {
		errs = append(errs, &PartialResultError{Part: "deepskin", Detail: r.Deepskin.Error})
	}
	if r.NarrativeFailed() {
		detail := r.Gemini.Error
		if detail == "" {
			detail = r.Gemini.Note
		}
		errs = append(errs, &PartialResultError{Part: "narrative", Detail: detail})
	}
	return errs
}
