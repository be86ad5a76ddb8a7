// Package config provides YAML-based game configuration loading and
// difficulty presets for the tank war platform.
package config

// ArtilleryConfig contains all configuration for the artillery game.
type ArtilleryConfig struct {
	Physics   ArtilleryPhysics   `yaml:"physics"`
	Round     ArtilleryRound     `yaml:"round"`
	Explosion ArtilleryExplosion `yaml:"explosion"`
}

// ArtilleryPhysics defines the ballistics parameters.
type ArtilleryPhysics struct {
	// Gravity is the downward acceleration in pixels per second squared.
	Gravity float64 `yaml:"gravity"`
	// PowerScale converts the gun power setting (0-100) into muzzle
	// speed in pixels per second.
	PowerScale float64 `yaml:"power_scale"`
	// TimeScale speeds missile flight and tank falls up relative to
	// real time.
	TimeScale float64 `yaml:"time_scale"`
}

// ArtilleryRound defines the per-round setup.
type ArtilleryRound struct {
	// Players is the number of tanks in a round, 2 to 5.
	Players int `yaml:"players"`
	// WindMax bounds the random wind acceleration, both directions.
	WindMax float64 `yaml:"wind_max"`
	// TankHealth is the starting health of each tank.
	TankHealth int `yaml:"tank_health"`
}

// ArtilleryExplosion defines blast parameters.
type ArtilleryExplosion struct {
	// Speed is the radius growth in pixels per second.
	Speed float64 `yaml:"speed"`
	// MissileRadius is the blast radius of a missile hit.
	MissileRadius float64 `yaml:"missile_radius"`
}

// Validate clamps out-of-range values to their legal bounds.
func (c *ArtilleryConfig) Validate() {
	if c.Round.Players < 2 {
		c.Round.Players = 2
	}
	if c.Round.Players > 5 {
		c.Round.Players = 5
	}
	if c.Round.TankHealth <= 0 {
		c.Round.TankHealth = 100
	}
	if c.Physics.Gravity <= 0 {
		c.Physics.Gravity = 9.80665
	}
	if c.Physics.PowerScale <= 0 {
		c.Physics.PowerScale = 0.35
	}
	if c.Physics.TimeScale <= 0 {
		c.Physics.TimeScale = 3
	}
	if c.Explosion.Speed <= 0 {
		c.Explosion.Speed = 18
	}
	if c.Explosion.MissileRadius <= 0 {
		c.Explosion.MissileRadius = 6
	}
	if c.Round.WindMax < 0 {
		c.Round.WindMax = 0
	}
}
