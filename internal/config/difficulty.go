package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name, falling back to normal.
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(name)
	default:
		return DifficultyNormal
	}
}

// ApplyArtilleryPreset adjusts the round parameters for a preset.
// Easy rounds have calm wind and sturdy tanks, hard rounds the opposite.
func ApplyArtilleryPreset(cfg *ArtilleryConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Round.TankHealth = 150
		cfg.Round.WindMax = 5
		cfg.Explosion.MissileRadius = 7
	case DifficultyHard:
		cfg.Round.TankHealth = 75
		cfg.Round.WindMax = 15
		cfg.Explosion.MissileRadius = 5
	}
}
