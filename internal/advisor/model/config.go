package model

// ================ Config ================
type SessionConfig struct {
	TTL          string `envconfig:"SESSION_TTL" default:"30m" validate:"required"`
	RecentRounds int    `envconfig:"SESSION_RECENT_ROUNDS" default:"3" validate:"gte=1,lte=50"`
}

type ImageConfig struct {
	SampleSize int   `envconfig:"IMAGE_SAMPLE_SIZE" default:"100" validate:"gte=1,lte=1024"`
	MaxBytes   int64 `envconfig:"IMAGE_MAX_BYTES" default:"20971520" validate:"gt=0"`
	MaxPixels  int64 `envconfig:"IMAGE_MAX_PIXELS" default:"50000000" validate:"gt=0"`
}

type MatcherConfig struct {
	TieBreak string `envconfig:"MATCHER_TIE_BREAK" default:"catalog" validate:"oneof=catalog name"`
	// Seed drives the fallback pick; 0 seeds from the clock.
	Seed int64 `envconfig:"MATCHER_SEED" default:"0"`
}
