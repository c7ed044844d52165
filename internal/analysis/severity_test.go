package analysis

import "testing"

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{0, "Mild"},
		{7.99, "Mild"},
		{8, "Moderate"},
		{10, "Moderate"},
		{15.99, "Moderate"},
		{16, "Severe"},
		{23.99, "Severe"},
		{24, "Very Severe"},
		{32, "Very Severe"},
	}

	for _, c := range cases {
		got := Classify(c.score)
		if got.Level != c.level {
			t.Errorf("Classify(%v).Level = %q, want %q", c.score, got.Level, c.level)
		}
		if got.Color == "" || got.Description == "" {
			t.Errorf("Classify(%v) returned incomplete severity: %+v", c.score, got)
		}
	}
}

func TestEffectiveSeverity_PrefersServerValue(t *testing.T) {
	d := &DeepskinResult{
		PWATScore:    20,
		PWATSeverity: &Severity{Level: "Custom", Color: "#000000", Description: "from server"},
	}
	if got := d.EffectiveSeverity(); got.Level != "Custom" {
		t.Errorf("expected server severity to win, got %q", got.Level)
	}
}

func TestEffectiveSeverity_FallsBackToScore(t *testing.T) {
	d := &DeepskinResult{PWATScore: 20}
	if got := d.EffectiveSeverity(); got.Level != "Severe" {
		t.Errorf("expected fallback classification Severe, got %q", got.Level)
	}

	var missing *DeepskinResult
	if got := missing.EffectiveSeverity(); got.Level != "Mild" {
		t.Errorf("expected nil result to classify as Mild, got %q", got.Level)
	}
}
