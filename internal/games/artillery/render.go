package artillery

import (
	"fmt"
	"math"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/geometry"
)

var playerColors = []core.Color{
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
	core.ColorBrightBlue,
}

func playerColor(playerNumber int) core.Color {
	if playerNumber < 1 {
		return core.ColorWhite
	}
	return playerColors[(playerNumber-1)%len(playerColors)]
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	g.renderLandscape(dst)
	for _, tank := range g.tanks {
		if tank != nil {
			g.renderTank(dst, tank)
		}
	}
	if g.missile != nil {
		g.renderMissile(dst)
	}
	for _, explosion := range g.explosions {
		g.renderExplosion(dst, explosion)
	}
	g.renderStatus(dst)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	}
	if g.phase == phaseFinished {
		banner := " DRAW "
		if g.winner > 0 {
			banner = fmt.Sprintf(" PLAYER %d WINS ", g.winner)
		}
		row := dst.Height() / 2
		boxW := len(" press R to restart ") + 4
		dst.DrawBox(core.NewRect((dst.Width()-boxW)/2, row-1, boxW, 4))
		dst.DrawTextCentered(row, banner)
		dst.DrawTextCentered(row+1, " press R to restart ")
	}
}

// screenY maps a field row (zero at the bottom) to a screen row.
func (g *Game) screenY(fieldY int) int {
	return statusRows + g.fieldHeight - 1 - fieldY
}

func (g *Game) renderLandscape(dst *core.Screen) {
	for y := 0; y < g.fieldHeight; y++ {
		row := g.landscape.PixelsLine(0, y, g.fieldWidth)
		if row == nil {
			continue
		}
		screenY := g.screenY(y)
		for x, c := range row {
			if c != 0 {
				dst.SetColored(x, screenY, '█', core.ColorGreen)
			}
		}
	}
}

func (g *Game) renderTank(dst *core.Screen, tank *Tank) {
	color := playerColor(tank.PlayerNumber)
	halfSize := int(tank.Size() / 2)
	cx := int(tank.Position.X)
	cy := int(tank.Position.Y)

	// Hull and gun base, sampled through the collision shape.
	for y := cy - halfSize; y <= cy+halfSize; y++ {
		for x := cx - halfSize; x <= cx+halfSize; x++ {
			point := geometry.V(float64(x), float64(y))
			if tank.HasCollision(point) {
				dst.SetColored(x, g.screenY(y), '█', color)
			}
		}
	}

	// Gun barrel as a sampled line from the hull to the muzzle.
	rad := tank.GunAngleRad()
	dir := geometry.V(math.Sin(rad), math.Cos(rad))
	for d := 1.0; d <= gunSize; d++ {
		p := tank.Position.Add(dir.Mul(d))
		dst.SetColored(int(p.X), g.screenY(int(p.Y)), '│', color)
	}
}

func (g *Game) renderMissile(dst *core.Screen) {
	p := g.missile.CurPos()
	dst.SetColored(int(p.X), g.screenY(int(p.Y)), '*', core.ColorBrightWhite)
}

func (g *Game) renderExplosion(dst *core.Screen, explosion *Explosion) {
	if explosion.CurOpacity <= 0 {
		return
	}
	r := rune('█')
	if explosion.CurOpacity < 0.33 {
		r = '░'
	} else if explosion.CurOpacity < 0.66 {
		r = '▒'
	}
	radius := int(explosion.CurRadius)
	cx := int(explosion.Position.X)
	cy := int(explosion.Position.Y)
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				dst.SetColored(cx+x, g.screenY(cy+y), r, core.ColorBrightRed)
			}
		}
	}
}

func (g *Game) renderStatus(dst *core.Screen) {
	tank := g.CurrentTank()
	if tank == nil {
		return
	}
	status := fmt.Sprintf(
		"Player %d Angle %4.0f Power %3.0f Wind %+5.1f ",
		tank.PlayerNumber,
		tank.GunAngleDeg(),
		tank.Power,
		g.windPower,
	)
	dst.DrawTextColored(0, 0, status, playerColor(tank.PlayerNumber))

	// Health of every tank, each in its player's color. Destroyed
	// tanks stay on the panel at zero.
	x := len(status) + 1
	for n := 1; n <= len(g.tanks); n++ {
		hp := 0
		for _, other := range g.tanks {
			if other != nil && other.PlayerNumber == n {
				hp = other.Health.Value
			}
		}
		label := fmt.Sprintf("P%d:%3d", n, hp)
		dst.DrawTextColored(x, 0, label, playerColor(n))
		x += len(label) + 1
	}
}
