package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cykooz/tank-war/internal/config"
	"github.com/Cykooz/tank-war/internal/core"
)

// BattleSelection holds the user's choices from the battle setup menu.
type BattleSelection struct {
	Players    int
	Difficulty config.DifficultyPreset
}

const (
	minBattlePlayers = 2
	maxBattlePlayers = 5
)

var battleDifficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// BattleMenuModel lets users pick player count and difficulty before a battle.
type BattleMenuModel struct {
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	players    int
	difficulty int // index into battleDifficulties
	choosing   bool
	quitting   bool
	back       bool
}

// NewBattleMenuModel creates a new battle setup model.
func NewBattleMenuModel(width, height int) BattleMenuModel {
	return BattleMenuModel{
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		players:    maxBattlePlayers,
		difficulty: 1, // normal
		choosing:   true,
	}
}

// Init initializes the model.
func (m BattleMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BattleMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m BattleMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.back = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < 2 { // Players, Difficulty, Start
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionSelect:
		if m.cursor == 2 {
			m.choosing = false
			return m, tea.Quit
		}
		m.cursor++
	}

	return m, nil
}

// adjust changes the value of the row under the cursor.
func (m *BattleMenuModel) adjust(delta int) {
	switch m.cursor {
	case 0:
		m.players = core.Clamp(m.players+delta, minBattlePlayers, maxBattlePlayers)
	case 1:
		m.difficulty = core.Clamp(m.difficulty+delta, 0, len(battleDifficulties)-1)
	}
}

// View renders the battle setup.
func (m BattleMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("N E W   B A T T L E", m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Tanks:      < %d >", m.players),
		fmt.Sprintf("Difficulty: < %s >", battleDifficulties[m.difficulty]),
		"Start!",
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m BattleMenuModel) Selected() *BattleSelection {
	if m.choosing {
		return nil
	}
	return &BattleSelection{
		Players:    m.players,
		Difficulty: battleDifficulties[m.difficulty],
	}
}

// IsQuitting returns true if user wants to quit.
func (m BattleMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BattleMenuModel) WantsBack() bool {
	return m.back
}

// RunBattleMenu runs the battle setup and returns the selection.
// A nil selection means the user backed out or quit.
func RunBattleMenu(cfg core.RuntimeConfig) (*BattleSelection, core.RuntimeConfig, error) {
	model := NewBattleMenuModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(BattleMenuModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
