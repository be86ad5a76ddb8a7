package artillery

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Cykooz/tank-war/internal/core"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  60,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func stepUntil(t *testing.T, g *Game, maxTicks int, done func() bool) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if done() {
			return
		}
		g.Step(core.InputFrame{})
	}
	if !done() {
		t.Fatalf("condition not reached within %d ticks (phase %d)", maxTicks, g.phase)
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	if g.phase != phaseTanksThrowing {
		t.Fatalf("phase after Reset = %d, want tanks throwing", g.phase)
	}
	if got := g.aliveTanks(); got != g.gameCfg.Round.Players {
		t.Fatalf("alive tanks = %d, want %d", got, g.gameCfg.Round.Players)
	}
	if g.State().GameOver {
		t.Fatal("game over right after Reset")
	}

	// All player numbers present exactly once.
	seen := make(map[int]bool)
	for _, tank := range g.tanks {
		if tank == nil {
			t.Fatal("nil tank after Reset")
		}
		if seen[tank.PlayerNumber] {
			t.Fatalf("player %d placed twice", tank.PlayerNumber)
		}
		seen[tank.PlayerNumber] = true
	}
}

func TestGameResetDeterministic(t *testing.T) {
	a := New()
	a.Reset(testConfig())
	b := New()
	b.Reset(testConfig())

	if a.WindPower() != b.WindPower() {
		t.Fatalf("wind differs for the same seed: %v vs %v", a.WindPower(), b.WindPower())
	}
	for i := range a.tanks {
		if a.tanks[i].PlayerNumber != b.tanks[i].PlayerNumber {
			t.Fatal("tank order differs for the same seed")
		}
		if a.tanks[i].Position != b.tanks[i].Position {
			t.Fatal("tank placement differs for the same seed")
		}
	}
}

func TestGameWindStaysInRange(t *testing.T) {
	g := New()
	cfg := testConfig()
	for seed := int64(1); seed <= 20; seed++ {
		cfg.Seed = seed
		g.Reset(cfg)
		wind := g.WindPower()
		windMax := g.gameCfg.Round.WindMax
		if wind < -windMax || wind > windMax {
			t.Fatalf("seed %d: wind %v outside [%v, %v]", seed, wind, -windMax, windMax)
		}
	}
}

func TestGameFirstTurnStarts(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	stepUntil(t, g, 2000, func() bool { return g.phase == phaseAiming })

	tank := g.CurrentTank()
	if tank == nil {
		t.Fatal("no current tank in the aiming phase")
	}
	if tank.IsThrowing() {
		t.Fatal("current tank is still falling")
	}
	if tank.Health.Invincible {
		t.Fatal("landed tank is still invincible")
	}
}

func TestGameAimingInput(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	stepUntil(t, g, 2000, func() bool { return g.phase == phaseAiming })

	tank := g.CurrentTank()
	angle := tank.GunAngleDeg()
	power := tank.Power

	var in core.InputFrame
	in.Set(core.ActionRight)
	in.Set(core.ActionUp)
	g.Step(in)

	if got := tank.GunAngleDeg(); got != angle+1 {
		t.Fatalf("angle = %v, want %v", got, angle+1)
	}
	if tank.Power != power+1 {
		t.Fatalf("power = %v, want %v", tank.Power, power+1)
	}
}

func TestGameShotEndsInExplosionAndNextTurn(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	stepUntil(t, g, 2000, func() bool { return g.phase == phaseAiming })

	shooter := g.CurrentTank()
	var in core.InputFrame
	in.Set(core.ActionFire)
	g.Step(in)

	if g.phase != phaseMissileFlight {
		t.Fatalf("phase after firing = %d, want missile flight", g.phase)
	}
	if g.missile == nil {
		t.Fatal("no missile after firing")
	}

	stepUntil(t, g, 20000, func() bool { return g.phase == phaseExplosions })
	if len(g.explosions) == 0 {
		t.Fatal("missile hit without an explosion")
	}

	stepUntil(t, g, 20000, func() bool {
		return g.phase == phaseAiming || g.phase == phaseFinished
	})
	if g.phase == phaseAiming && g.CurrentTank() == shooter {
		t.Fatal("turn did not pass to the next tank")
	}
}

func TestGamePauseFreezesPlay(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	stepUntil(t, g, 2000, func() bool { return g.phase == phaseAiming })

	var pause core.InputFrame
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("pause action did not pause the game")
	}

	tank := g.CurrentTank()
	angle := tank.GunAngleDeg()
	var in core.InputFrame
	in.Set(core.ActionLeft)
	g.Step(in)
	if tank.GunAngleDeg() != angle {
		t.Fatal("aiming input applied while paused")
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Fatal("second pause action did not resume the game")
	}
}

func TestRenderStatusShowsAllTanksHealth(t *testing.T) {
	g := New()
	cfg := testConfig()
	cfg.ScreenW = 100
	g.Reset(cfg)
	stepUntil(t, g, 2000, func() bool { return g.phase == phaseAiming })

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	row := screen.Row(0)
	if !strings.Contains(row, "Wind") {
		t.Fatalf("status row %q is missing the wind readout", row)
	}
	for n := 1; n <= g.gameCfg.Round.Players; n++ {
		if !strings.Contains(row, fmt.Sprintf("P%d:", n)) {
			t.Errorf("status row %q is missing player %d's health", row, n)
		}
	}
}

func TestGamePlaysToCompletion(t *testing.T) {
	g := New()
	cfg := testConfig()
	cfg.Seed = 7
	g.Reset(cfg)

	var fire core.InputFrame
	fire.Set(core.ActionFire)

	for i := 0; i < 500000 && g.phase != phaseFinished; i++ {
		if g.phase == phaseAiming {
			g.Step(fire)
		} else {
			g.Step(core.InputFrame{})
		}
	}
	if g.phase != phaseFinished {
		t.Fatal("round never finished")
	}

	state := g.State()
	if !state.GameOver {
		t.Fatal("finished round does not report game over")
	}
	if g.winner > 0 {
		for _, tank := range g.tanks {
			if tank != nil && tank.PlayerNumber == g.winner && state.Score != tank.Health.Value {
				t.Fatalf("score %d does not match the winner's health %d", state.Score, tank.Health.Value)
			}
		}
	} else if state.Score != 0 {
		t.Fatalf("draw should score 0, got %d", state.Score)
	}

	// Restart begins a fresh round.
	var restart core.InputFrame
	restart.Set(core.ActionRestart)
	g.Step(restart)
	if g.phase != phaseTanksThrowing {
		t.Fatal("restart did not start a new round")
	}
	if g.State().GameOver {
		t.Fatal("game over still reported after restart")
	}
}
