package catalog

import "github.com/smart-spoon-core/advisor/internal/advisor/model"

// Default returns the built-in dishes the advisor recognises.
func Default() *Catalog {
	return MustNew(
		model.FoodProfile{
			Name:         "biryani",
			Ingredients:  []string{"rice", "chicken", "spices", "yogurt", "saffron"},
			SaltLevel:    model.LevelMedium,
			SpiceLevel:   model.LevelHigh,
			Colors:       []model.RGB{rgb(180, 150, 50), rgb(200, 120, 30)},
			DefaultTaste: "balanced",
		},
		model.FoodProfile{
			Name:         "dosa",
			Ingredients:  []string{"rice flour", "lentils", "salt", "oil"},
			SaltLevel:    model.LevelLow,
			SpiceLevel:   model.LevelMedium,
			Colors:       []model.RGB{rgb(220, 200, 150), rgb(240, 220, 180)},
			DefaultTaste: "mild",
		},
		model.FoodProfile{
			Name:         "pizza",
			Ingredients:  []string{"flour", "cheese", "tomato sauce", "toppings"},
			SaltLevel:    model.LevelHigh,
			SpiceLevel:   model.LevelLow,
			Colors:       []model.RGB{rgb(180, 50, 50), rgb(220, 80, 80)},
			DefaultTaste: "savory",
		},
		model.FoodProfile{
			Name:         "dal tadka",
			Ingredients:  []string{"lentils", "turmeric", "cumin", "garlic"},
			SaltLevel:    model.LevelMedium,
			SpiceLevel:   model.LevelMedium,
			Colors:       []model.RGB{rgb(200, 180, 80), rgb(220, 200, 100)},
			DefaultTaste: "earthy",
		},
		model.FoodProfile{
			Name:         "idli",
			Ingredients:  []string{"rice", "urad dal", "salt"},
			SaltLevel:    model.LevelLow,
			SpiceLevel:   model.LevelLow,
			Colors:       []model.RGB{rgb(240, 240, 240), rgb(255, 255, 255)},
			DefaultTaste: "neutral",
		},
	)
}

func rgb(r, g, b uint8) model.RGB {
	return model.RGB{R: r, G: g, B: b}
}
