package analysis

// PWAT scores range 0-32. Thresholds and presentation values match the scoring
// backend so a locally classified score never disagrees with a server-supplied one.
const (
	moderateThreshold   = 8
	severeThreshold     = 16
	verySevereThreshold = 24
)

var severityLevels = []Severity{
	{
		Level:       "Mild",
		Color:       "#27ae60",
		Description: "Wound is healing well. Continue current care.",
	},
	{
		Level:       "Moderate",
		Color:       "#f39c12",
		Description: "Active treatment recommended. Monitor closely.",
	},
	{
		Level:       "Severe",
		Color:       "#e74c3c",
		Description: "Requires immediate attention. Consider specialist consult.",
	},
	{
		Level:       "Very Severe",
		Color:       "#c0392b",
		Description: "Critical - seek specialist care immediately.",
	},
}

// Classify maps a PWAT score to its clinical severity level. Boundaries are inclusive
// on the lower bound: 8 is Moderate, 16 is Severe, 24 is Very Severe.
func Classify(score float64) Severity {
	switch {
	case score < moderateThreshold:
		return severityLevels[0]
	case score < severeThreshold:
		return severityLevels[1]
	case score < verySevereThreshold:
		return severityLevels[2]
	default:
		return severityLevels[3]
	}
}

// EffectiveSeverity prefers the server-supplied classification and falls back to the
// local table when the response omitted it.
func (d *DeepskinResult) EffectiveSeverity() Severity {
	if d != nil && d.PWATSeverity != nil && d.PWATSeverity.Level != "" {
		return *d.PWATSeverity
	}
	if d == nil {
		return Classify(0)
	}
	return Classify(d.PWATScore)
}
