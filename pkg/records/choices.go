package records

import "strings"

// choiceTable holds the fixed option sets for enumerated-choice keys.
// Option order is display order.
var choiceTable = map[string][]Choice{
	"gender": {
		{Label: "Male", Value: "male"},
		{Label: "Female", Value: "female"},
		{Label: "Other", Value: "other"},
		{Label: "Unknown", Value: "unknown"},
	},
	"status": {
		{Label: "Active", Value: "active"},
		{Label: "Inactive", Value: "inactive"},
		{Label: "Under Review", Value: "under_review"},
		{Label: "Archived", Value: "archived"},
	},
	"risk_level": {
		{Label: "Low", Value: "low"},
		{Label: "Medium", Value: "medium"},
		{Label: "High", Value: "high"},
		{Label: "Critical", Value: "critical"},
	},
	"energy_type": {
		{Label: "Petrol", Value: "petrol"},
		{Label: "Diesel", Value: "diesel"},
		{Label: "Electric", Value: "electric"},
		{Label: "Hybrid", Value: "hybrid"},
	},
	"vehicle_type": {
		{Label: "Car", Value: "car"},
		{Label: "Motorcycle", Value: "motorcycle"},
		{Label: "Truck", Value: "truck"},
		{Label: "Van", Value: "van"},
		{Label: "Other", Value: "other"},
	},
}

// ChoicesFor returns the option set for an enumerated-choice key.
func ChoicesFor(key string) ([]Choice, bool) {
	c, ok := choiceTable[strings.ToLower(key)]
	return c, ok
}
