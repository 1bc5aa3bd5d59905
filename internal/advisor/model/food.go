package model

// Level is a qualitative salt or spice intensity.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// RGB is a representative color of a dish, one byte per channel.
type RGB struct {
	R, G, B uint8
}

// ColorSignature is the observed average color of an image.
// Channels are not range-checked; well-formed values lie in [0,255].
type ColorSignature struct {
	R, G, B float64
}

// SignatureOf converts a representative color into a signature.
func SignatureOf(c RGB) ColorSignature {
	return ColorSignature{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// FoodProfile is a static catalog entry describing a dish.
type FoodProfile struct {
	Name         string
	Ingredients  []string
	SaltLevel    Level
	SpiceLevel   Level
	Colors       []RGB
	DefaultTaste string
}
