package sections

// builtinDefinitions declares the variant set every registry starts from.
// Attribute contracts are JSON schemas over the section's attribute bag
// (the discriminator itself excluded). Additional attributes are allowed so
// older writers keep working as variants grow fields.
func builtinDefinitions() []Definition {
	mediaRef := map[string]any{
		"type":     "object",
		"required": []any{"url"},
		"properties": map[string]any{
			"url":    map[string]any{"type": "string", "minLength": 1},
			"width":  map[string]any{"type": "integer"},
			"height": map[string]any{"type": "integer"},
			"format": map[string]any{"type": "string"},
		},
	}

	return []Definition{
		{
			Type: "hero",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"title", "backgroundMedia"},
				"properties": map[string]any{
					"title":           map[string]any{"type": "string", "minLength": 1},
					"subtitle":        map[string]any{"type": "string"},
					"backgroundMedia": mediaRef,
				},
			},
		},
		{
			Type: "about",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"title"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string", "minLength": 1},
					"body":  map[string]any{"type": "string"},
					"media": mediaRef,
				},
			},
		},
		{
			Type: "excellence",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"items"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"items": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"number", "title"},
							"properties": map[string]any{
								"number": map[string]any{"type": "integer"},
								"title":  map[string]any{"type": "string", "minLength": 1},
								"body":   map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
		{
			Type: "feature-grid",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"items"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"items": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"label", "description"},
							"properties": map[string]any{
								"label":       map[string]any{"type": "string", "minLength": 1},
								"description": map[string]any{"type": "string", "minLength": 1},
								"icon":        map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
		{
			Type: "text",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"body"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"body":  map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
		{
			Type: "cta",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"label", "url"},
				"properties": map[string]any{
					"label": map[string]any{"type": "string", "minLength": 1},
					"url":   map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
		{
			Type: "gallery",
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"media"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"media": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    mediaRef,
					},
				},
			},
		},
	}
}
