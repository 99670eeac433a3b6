package planner

import "google.golang.org/genai"

// ResponseSchema is the strict output shape submitted with every planning
// request. It is the only mechanism constraining the model's output, so field
// names, required lists and the mode enum must match the domain model exactly.
func ResponseSchema() *genai.Schema {
	modeValues := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		modeValues = append(modeValues, string(m))
	}

	segmentSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mode":         {Type: genai.TypeString, Enum: modeValues},
			"from":         {Type: genai.TypeString},
			"to":           {Type: genai.TypeString},
			"duration":     {Type: genai.TypeString},
			"cost":         {Type: genai.TypeString},
			"instructions": {Type: genai.TypeString},
			"transferDetails": {
				Type:        genai.TypeString,
				Description: "Specific instructions on where and how to switch to the next mode.",
			},
		},
		Required: []string{"mode", "from", "to", "instructions"},
	}

	routeSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":              {Type: genai.TypeString},
			"label":           {Type: genai.TypeString},
			"totalDuration":   {Type: genai.TypeString},
			"totalCost":       {Type: genai.TypeString},
			"summary":         {Type: genai.TypeString},
			"efficiencyScore": {Type: genai.TypeNumber},
			"whyEfficient":    {Type: genai.TypeString},
			"segments": {
				Type:  genai.TypeArray,
				Items: segmentSchema,
			},
		},
		Required: []string{"id", "label", "totalDuration", "segments", "efficiencyScore", "whyEfficient"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"origin":      {Type: genai.TypeString},
			"destination": {Type: genai.TypeString},
			"comprehensiveReport": {
				Type:        genai.TypeString,
				Description: "Detailed narrative analysis of the best travel strategy.",
			},
			"routes": {
				Type:  genai.TypeArray,
				Items: routeSchema,
			},
			"proTips": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"destinationWeatherInfo": {Type: genai.TypeString},
		},
		Required: []string{"origin", "destination", "routes", "proTips", "comprehensiveReport"},
	}
}
