package tui

import (
	"fmt"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/terrain"
)

// TerrainBrowserModel is a Bubble Tea model for exploring generated
// landscapes. Left/right scroll the noise window, up/down switch seeds.
type TerrainBrowserModel struct {
	landscape *terrain.Landscape
	screen    *core.Screen
	keyMapper *KeyMapper
	seed      uint32
	width     int
	height    int
	quitting  bool
	err       error
}

// NewTerrainBrowserModel creates a browser sized to the given screen.
func NewTerrainBrowserModel(width, height int, seed uint32) TerrainBrowserModel {
	m := TerrainBrowserModel{
		screen:    core.NewScreen(width, height),
		keyMapper: NewKeyMapper(),
		seed:      seed,
		width:     width,
		height:    height,
	}
	m.rebuild()
	return m
}

// rebuild regenerates the landscape for the current size and seed.
func (m *TerrainBrowserModel) rebuild() {
	landscape, err := terrain.New(m.width, m.height-1, m.seed)
	if err != nil {
		m.err = err
		return
	}
	landscape.Generate()
	m.landscape = landscape
	m.err = nil
}

// Init initializes the model.
func (m TerrainBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m TerrainBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.rebuild()
		return m, nil
	}
	return m, nil
}

func (m TerrainBrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "n" {
		m.seed = rand.Uint32()
		m.rebuild()
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionLeft:
		if m.landscape != nil {
			m.landscape.SetOffset(m.landscape.Offset() - 1)
			m.landscape.Generate()
		}

	case MenuActionRight:
		if m.landscape != nil {
			m.landscape.SetOffset(m.landscape.Offset() + 1)
			m.landscape.Generate()
		}

	case MenuActionUp:
		m.seed++
		m.rebuild()

	case MenuActionDown:
		m.seed--
		m.rebuild()
	}

	return m, nil
}

// View renders the landscape with a status line on top.
func (m TerrainBrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("terrain browser: %v", m.err)
	}

	m.screen.Clear()

	fieldHeight := m.height - 1
	for y := 0; y < fieldHeight; y++ {
		row := m.landscape.PixelsLine(0, y, m.width)
		if row == nil {
			continue
		}
		screenY := 1 + fieldHeight - 1 - y
		for x, c := range row {
			if c != 0 {
				m.screen.SetColored(x, screenY, '█', core.ColorGreen)
			}
		}
	}

	status := fmt.Sprintf(
		"Seed %d  Offset %.0f  |  Left/Right: scroll  Up/Down: seed  N: random  Esc: back",
		m.seed, m.landscape.Offset(),
	)
	m.screen.DrawText(0, 0, status)

	return RenderScreen(m.screen)
}

// RunTerrainBrowser runs the landscape browser until the user backs out.
func RunTerrainBrowser(cfg core.RuntimeConfig, seed uint32) error {
	model := NewTerrainBrowserModel(cfg.ScreenW, cfg.ScreenH, seed)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
