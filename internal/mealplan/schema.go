package mealplan

import "github.com/sashabaranov/go-openai/jsonschema"

// planSchema is the fixed output shape requested from the planner model.
// Generation is validate-or-fail: the model either fills this schema or the
// stage fails, never a best-effort object.
var planSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"totalCalories": {
			Type:        jsonschema.Number,
			Description: "Total de calorias do dia",
		},
		"macros": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"protein": {Type: jsonschema.Number, Description: "Proteínas em gramas"},
				"carbs":   {Type: jsonschema.Number, Description: "Carboidratos em gramas"},
				"fat":     {Type: jsonschema.Number, Description: "Gorduras em gramas"},
			},
			Required: []string{"protein", "carbs", "fat"},
		},
		"meals": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"name":     {Type: jsonschema.String, Description: "Nome da refeição (ex: Café da manhã, Almoço)"},
					"time":     {Type: jsonschema.String, Description: "Horário sugerido (ex: 7h00, 12h30)"},
					"calories": {Type: jsonschema.Number, Description: "Calorias da refeição"},
					"foods": {
						Type: jsonschema.Array,
						Items: &jsonschema.Definition{
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"item":     {Type: jsonschema.String, Description: "Nome do alimento"},
								"quantity": {Type: jsonschema.String, Description: "Quantidade em medida caseira (ex: 1 xícara, 100g)"},
								"calories": {Type: jsonschema.Number, Description: "Calorias do item"},
							},
							Required: []string{"item", "quantity", "calories"},
						},
					},
				},
				Required: []string{"name", "time", "calories", "foods"},
			},
		},
		"notes": {
			Type:        jsonschema.String,
			Description: "Observações e dicas adicionais",
		},
	},
	Required: []string{"totalCalories", "macros", "meals"},
}
