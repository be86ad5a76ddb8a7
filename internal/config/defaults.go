package config

import (
	_ "embed"
)

//go:embed defaults/artillery.yaml
var defaultArtilleryYAML []byte

// DefaultArtilleryConfig returns the default artillery configuration.
func DefaultArtilleryConfig() ArtilleryConfig {
	return ArtilleryConfig{
		Physics: ArtilleryPhysics{
			Gravity:    9.80665,
			PowerScale: 0.35,
			TimeScale:  3.0,
		},
		Round: ArtilleryRound{
			Players:    5,
			WindMax:    10.0,
			TankHealth: 100,
		},
		Explosion: ArtilleryExplosion{
			Speed:         18.0,
			MissileRadius: 6.0,
		},
	}
}
