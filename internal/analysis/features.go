package analysis

import (
	"sort"
	"strings"
)

// Feature categories in precedence order. A feature name is assigned to the first
// category whose keyword set matches; names matching nothing fall back to Other.
const (
	CategoryTexture    = "Texture"
	CategoryColor      = "Color"
	CategoryMorphology = "Morphology"
	CategoryIntensity  = "Intensity"
	CategoryOther      = "Other"
)

var featureCategories = []struct {
	name     string
	keywords []string
}{
	{CategoryTexture, []string{"contrast", "homogeneity", "energy", "correlation", "asm", "entropy"}},
	{CategoryColor, []string{"red", "green", "blue", "hue", "saturation", "value", "rgb"}},
	{CategoryMorphology, []string{"area", "perimeter", "circularity", "eccentricity", "solidity", "extent"}},
	{CategoryIntensity, []string{"mean", "std", "intensity"}},
}

// CategoryOrder is the fixed display order of feature categories.
var CategoryOrder = []string{
	CategoryTexture,
	CategoryColor,
	CategoryMorphology,
	CategoryIntensity,
	CategoryOther,
}

// Categorize assigns a feature name to exactly one category by case-insensitive
// substring match.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, category := range featureCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				return category.name
			}
		}
	}
	return CategoryOther
}

// Feature is a single named measurement for display.
type Feature struct {
	Name  string
	Value any
}

// CategorizeFeatures groups a feature map by category, with feature names sorted
// within each category for stable rendering. The wire format also allows features to
// arrive pre-grouped (maps keyed by category holding name/value maps); those nested
// maps are flattened and re-categorized by name.
func CategorizeFeatures(features map[string]any) map[string][]Feature {
	grouped := make(map[string][]Feature)
	for name, value := range features {
		if nested, ok := value.(map[string]any); ok && isKnownCategory(name) {
			for nestedName, nestedValue := range nested {
				category := Categorize(nestedName)
				grouped[category] = append(grouped[category], Feature{Name: nestedName, Value: nestedValue})
			}
			continue
		}
		category := Categorize(name)
		grouped[category] = append(grouped[category], Feature{Name: name, Value: value})
	}
	for _, list := range grouped {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Name < list[j].Name
		})
	}
	return grouped
}

func isKnownCategory(name string) bool {
	for _, category := range CategoryOrder {
		if name == category {
			return true
		}
	}
	return false
}
