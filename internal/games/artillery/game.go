// Package artillery implements a turn-based tank artillery game on a
// destructible landscape. Tanks fall onto generated terrain, take
// turns firing ballistic shells affected by wind and gravity, and the
// last tank standing wins the round.
package artillery

import (
	"math"
	"math/rand"
	"time"

	"github.com/Cykooz/tank-war/internal/config"
	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/geometry"
	"github.com/Cykooz/tank-war/internal/physics"
	"github.com/Cykooz/tank-war/internal/registry"
	"github.com/Cykooz/tank-war/internal/terrain"
)

// statusRows is the number of screen rows reserved for the status panel.
const statusRows = 1

// phase is the round state machine.
type phase int

const (
	phaseTanksThrowing phase = iota
	phaseAiming
	phaseMissileFlight
	phaseExplosions
	phaseSubsidence
	phaseFinished
)

var (
	configPath      string
	difficulty      = config.DifficultyNormal
	playersOverride int
)

// SetConfigPath sets a custom config file path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty sets the difficulty preset used by the next Reset.
func SetDifficulty(preset config.DifficultyPreset) {
	difficulty = preset
}

// SetPlayers overrides the configured tank count for the next Reset.
// Zero restores the value from the config file.
func SetPlayers(count int) {
	playersOverride = count
}

// Game implements the artillery game logic.
type Game struct {
	cfg     core.RuntimeConfig
	gameCfg config.ArtilleryConfig

	clock     *core.TickClock
	rng       *rand.Rand
	landscape *terrain.Landscape

	fieldWidth  int
	fieldHeight int

	tanks       []*Tank // nil entries are destroyed tanks
	currentTank int
	missile     *Missile
	explosions  []*Explosion

	phase     phase
	windPower float64
	winner    int
	score     int
	paused    bool
}

// New creates a new artillery game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "artillery"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tank War"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg

	gameCfg, err := config.LoadArtillery(configPath)
	if err != nil {
		gameCfg = config.DefaultArtilleryConfig()
	}
	config.ApplyArtilleryPreset(&gameCfg, difficulty)
	if playersOverride > 0 {
		gameCfg.Round.Players = playersOverride
		gameCfg.Validate()
	}
	g.gameCfg = gameCfg

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.clock = core.NewTickClock(cfg.TickRate)

	g.fieldWidth = cfg.ScreenW
	g.fieldHeight = cfg.ScreenH - statusRows
	if g.fieldWidth < 2 {
		g.fieldWidth = 2
	}
	if g.fieldHeight < 2 {
		g.fieldHeight = 2
	}

	landscape, err := terrain.New(g.fieldWidth, g.fieldHeight, uint32(g.rng.Int63()))
	if err != nil {
		panic(err)
	}
	g.landscape = landscape.WithClock(g.clock.Now)

	g.paused = false
	g.startRound()
}

// startRound rebuilds the field and drops a fresh set of shuffled
// tanks onto it.
func (g *Game) startRound() {
	g.landscape.SetSeed(uint32(g.rng.Int63()))
	g.landscape.SetOffset(g.rng.Float64() * float64(g.fieldWidth) / 2)
	g.landscape.Generate()
	g.landscape.SetChanged()

	count := g.gameCfg.Round.Players
	playerNumbers := make([]int, count)
	for i := range playerNumbers {
		playerNumbers[i] = i + 1
	}
	g.rng.Shuffle(count, func(i, j int) {
		playerNumbers[i], playerNumbers[j] = playerNumbers[j], playerNumbers[i]
	})

	padding := float64(g.fieldWidth)/10 + 0.5
	sizeBetweenTanks := math.Round((float64(g.fieldWidth) - 2*padding) / float64(count-1))
	tankY := float64(g.fieldHeight) - 5 + tankSize/2

	g.tanks = g.tanks[:0]
	for i, playerNumber := range playerNumbers {
		position := geometry.V(padding+sizeBetweenTanks*float64(i), tankY)
		tank := NewTank(playerNumber, position, g.gameCfg.Round.TankHealth)
		tank.ThrowDown(g.gameCfg.Physics.Gravity, g.gameCfg.Physics.TimeScale, g.clock.Now)
		g.tanks = append(g.tanks, tank)
	}

	g.currentTank = 0
	g.missile = nil
	g.explosions = g.explosions[:0]
	g.phase = phaseTanksThrowing
	g.winner = 0
	g.score = 0
	g.changeWind()
}

// changeWind rolls a new wind acceleration for the round, rounded to
// one decimal.
func (g *Game) changeWind() {
	windMax := g.gameCfg.Round.WindMax
	g.windPower = math.Round((g.rng.Float64()*2-1)*windMax*10) / 10
}

// WindPower returns the current wind acceleration.
func (g *Game) WindPower() float64 {
	return g.windPower
}

// CurrentTank returns the tank whose turn it is, or nil.
func (g *Game) CurrentTank() *Tank {
	if g.currentTank < 0 || g.currentTank >= len(g.tanks) {
		return nil
	}
	return g.tanks[g.currentTank]
}

// aliveTanks returns the number of tanks that are still in the round.
func (g *Game) aliveTanks() int {
	count := 0
	for _, t := range g.tanks {
		if t != nil {
			count++
		}
	}
	return count
}

// switchCurrentTank passes the turn to the next living tank.
// It returns false when no living tank is left.
func (g *Game) switchCurrentTank() bool {
	currentTank := g.currentTank
	for range g.tanks {
		currentTank++
		if currentTank >= len(g.tanks) {
			currentTank = 0
		}
		if g.tanks[currentTank] != nil {
			g.currentTank = currentTank
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.phase == phaseFinished {
		if in.Has(core.ActionRestart) {
			g.startRound()
		}
		return core.StepResult{State: g.State()}
	}

	// Time stands still while the game is paused, so the clock only
	// moves inside an unpaused step.
	g.clock.Advance()

	switch g.phase {
	case phaseTanksThrowing:
		g.stepTanksThrowing()
	case phaseAiming:
		g.stepAiming(in)
	case phaseMissileFlight:
		g.stepMissileFlight()
	case phaseExplosions:
		g.stepExplosions()
	case phaseSubsidence:
		g.stepSubsidence()
	}

	return core.StepResult{State: g.State()}
}

// stepTanksThrowing settles all falling tanks, then passes the turn.
func (g *Game) stepTanksThrowing() {
	throwing := 0
	for _, tank := range g.tanks {
		if tank == nil || !tank.IsThrowing() {
			continue
		}
		tank.UpdateThrowing(g.landscape)
		if tank.IsThrowing() {
			throwing++
		}
	}
	if throwing > 0 {
		return
	}

	// Fall damage may have destroyed tanks.
	g.removeDeadTanks()
	if len(g.explosions) > 0 {
		g.phase = phaseExplosions
		return
	}
	g.finishOrNextTurn()
}

// finishOrNextTurn ends the round when at most one tank is left,
// otherwise gives the turn to the next tank.
func (g *Game) finishOrNextTurn() {
	switch g.aliveTanks() {
	case 0:
		g.winner = 0
		g.phase = phaseFinished
		return
	case 1:
		for _, tank := range g.tanks {
			if tank != nil {
				g.winner = tank.PlayerNumber
				g.score = tank.Health.Value
			}
		}
		g.phase = phaseFinished
		return
	}

	g.switchCurrentTank()
	g.phase = phaseAiming
}

// stepAiming applies aim input to the current tank and fires on demand.
func (g *Game) stepAiming(in core.InputFrame) {
	tank := g.CurrentTank()
	if tank == nil {
		g.finishOrNextTurn()
		return
	}

	if in.Has(core.ActionLeft) {
		tank.IncGunAngle(-1)
	}
	if in.Has(core.ActionRight) {
		tank.IncGunAngle(1)
	}
	if in.Has(core.ActionUp) {
		tank.IncGunPower(1)
	}
	if in.Has(core.ActionDown) {
		tank.IncGunPower(-1)
	}

	if in.Has(core.ActionFire) {
		acceleration := geometry.V(g.windPower, -g.gameCfg.Physics.Gravity)
		g.missile = tank.Shoot(
			g.gameCfg.Physics.PowerScale,
			acceleration,
			g.gameCfg.Physics.TimeScale,
			g.clock.Now,
		)
		g.phase = phaseMissileFlight
	}
}

// stepMissileFlight flies the missile until it hits ground or a tank.
func (g *Game) stepMissileFlight() {
	if g.missile == nil {
		g.phase = phaseAiming
		return
	}

	borders := physics.Borders{Width: g.fieldWidth, Height: g.fieldHeight}
	_, hit := g.missile.Update(borders, func(x, y int) bool {
		if g.landscape.IsNotEmpty(x, y) {
			return true
		}
		point := geometry.V(float64(x), float64(y))
		for _, tank := range g.tanks {
			if tank != nil && tank.HasCollision(point) {
				return true
			}
		}
		return false
	})

	if hit {
		g.spawnExplosion(g.missile.CurPos())
		g.missile = nil
		g.phase = phaseExplosions
	}
}

func (g *Game) spawnExplosion(position geometry.Vec2) {
	g.explosions = append(g.explosions, NewExplosion(
		position,
		g.gameCfg.Explosion.MissileRadius,
		g.gameCfg.Explosion.Speed,
		g.clock.Now,
	))
}

// stepExplosions grows the blasts, applies their damage when they fade
// and starts ground subsidence after the last one.
func (g *Game) stepExplosions() {
	remaining := g.explosions[:0]
	for _, explosion := range g.explosions {
		if !explosion.Update(g.landscape) {
			remaining = append(remaining, explosion)
			continue
		}
		// The blast has faded, apply its damage.
		for _, tank := range g.tanks {
			if tank == nil {
				continue
			}
			percents := explosion.IntersectionPercents(tank.BodyRect())
			if percents > 0 {
				tank.Health.Damage(percents)
			}
		}
	}
	g.explosions = remaining

	// Destroyed tanks explode in turn.
	g.removeDeadTanks()

	if len(g.explosions) == 0 {
		g.landscape.Subsidence()
		g.phase = phaseSubsidence
	}
}

// removeDeadTanks replaces destroyed tanks with explosions.
func (g *Game) removeDeadTanks() {
	for i, tank := range g.tanks {
		if tank != nil && tank.Health.Value == 0 && !tank.Health.Invincible {
			g.spawnExplosion(tank.Position)
			g.tanks[i] = nil
		}
	}
}

// stepSubsidence waits for the ground to settle, then drops the tanks
// onto the new surface.
func (g *Game) stepSubsidence() {
	if !g.landscape.Update() {
		return
	}
	for _, tank := range g.tanks {
		if tank != nil {
			tank.ThrowDown(g.gameCfg.Physics.Gravity, g.gameCfg.Physics.TimeScale, g.clock.Now)
		}
	}
	g.phase = phaseTanksThrowing
}

// BattleOutcome reports the winning player number (0 for a draw) and
// how many tanks entered the round.
func (g *Game) BattleOutcome() (winner, players int) {
	return g.winner, g.gameCfg.Round.Players
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == phaseFinished,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register("artillery", func() registry.Game {
		return New()
	})
}
