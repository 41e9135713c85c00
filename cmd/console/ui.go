package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/narrative"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	dialogueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	laneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// panelState is the render-side state owned by the dialogue controller.
// It implements interaction.Renderer and interaction.EffectSink; the tea
// model draws whatever is in here.
type panelState struct {
	panelVisible  bool
	promptVisible bool
	promptText    string

	turn       *dialogue.Turn
	generation uint64
	labels     []string

	inventory []string
	quests    []string
	events    []string

	transcript []string
}

func (p *panelState) ShowPanel() { p.panelVisible = true }

func (p *panelState) HidePanel() {
	p.panelVisible = false
	p.turn = nil
	p.labels = nil
}

func (p *panelState) RenderTurn(turn dialogue.Turn) {
	t := turn
	p.turn = &t
	p.transcript = append(p.transcript, fmt.Sprintf("%s: %s", turn.Speaker, turn.Body))
}

func (p *panelState) RenderOptions(generation uint64, labels []string) {
	p.generation = generation
	p.labels = append([]string(nil), labels...)
}

func (p *panelState) ShowPrompt(text string) {
	p.promptVisible = true
	p.promptText = text
}

func (p *panelState) HidePrompt() { p.promptVisible = false }

func (p *panelState) GrantItem(itemID string) {
	p.inventory = append(p.inventory, itemID)
}

func (p *panelState) UpdateQuest(questID string) {
	p.quests = append(p.quests, questID)
}

func (p *panelState) TriggerEvent(eventID string) {
	p.events = append(p.events, eventID)
}

// ConsoleUI is the BubbleTea model that runs the demo.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	world    *world
	panel    *panelState
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	status   string
}

func NewConsoleUI(w *world, panel *panelState) ConsoleUI {
	vp := viewport.New(60, 12)
	return ConsoleUI{
		world:    w,
		panel:    panel,
		viewport: vp,
	}
}

func (ui ConsoleUI) Init() tea.Cmd {
	return nil
}

func (ui ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		ui.viewport.Width = msg.Width - 30
		ui.viewport.Height = msg.Height - 10
		ui.ready = true

	case tea.KeyMsg:
		ctx := context.Background()
		switch msg.String() {
		case "ctrl+c", "q":
			return ui, tea.Quit

		case "left", "h":
			ui.world.movePlayer(ctx, -1)
		case "right", "l":
			ui.world.movePlayer(ctx, 1)

		case "enter", " ":
			if active := ui.world.active(); active != nil {
				active.zone.OnTriggerInput(ctx)
			}

		case "1", "2", "3":
			if active := ui.world.active(); active != nil {
				index := int(msg.String()[0] - '1')
				active.zone.ApplyResponse(ctx, ui.panel.generation, index)
			}

		case "ctrl+y":
			if err := clipboard.WriteAll(strings.Join(ui.panel.transcript, "\n")); err != nil {
				ui.status = "copy failed: " + err.Error()
			} else {
				ui.status = "transcript copied"
			}
		}
	}

	ui.viewport.SetContent(ui.dialogueContent())
	ui.viewport.GotoBottom()
	return ui, nil
}

func (ui ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("NARRATIVEVERSE") + "\n\n")
	b.WriteString(ui.laneView() + "\n\n")

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.viewport.View(),
		sidebarStyle.Render(ui.sidebarView()),
	)
	b.WriteString(main + "\n")

	b.WriteString(separatorStyle.Render(strings.Repeat("─", max(ui.width-2, 10))) + "\n")
	b.WriteString(statusStyle.Render(ui.statusLine()))
	return b.String()
}

// laneView draws the walkable lane with the player and NPC markers.
func (ui ConsoleUI) laneView() string {
	cells := make([]string, ui.world.width)
	for i := range cells {
		cells[i] = laneStyle.Render("·")
	}
	for _, p := range ui.world.npcs {
		marker := "☺"
		if p.inRange {
			marker = speakerStyle.Render("☺")
		}
		cells[p.pos] = marker
	}
	cells[ui.world.playerPos] = playerStyle.Render("@")

	lane := strings.Join(cells, "")
	if active := ui.world.active(); active != nil && ui.panel.promptVisible {
		pad := strings.Repeat(" ", active.pos)
		return pad + promptStyle.Render("▼ "+ui.panel.promptText) + "\n" + lane
	}
	return "\n" + lane
}

func (ui ConsoleUI) dialogueContent() string {
	if !ui.panel.panelVisible || ui.panel.turn == nil {
		return laneStyle.Render("Walk up to someone and press Enter to talk.")
	}

	width := ui.viewport.Width
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(speakerStyle.Render(ui.panel.turn.Speaker) + "\n")
	b.WriteString(dialogueStyle.Render(wordwrap.String(ui.panel.turn.Body, width-2)) + "\n\n")

	if len(ui.panel.labels) == 0 {
		b.WriteString(laneStyle.Render("(no responses; walk away to end the conversation)"))
		return b.String()
	}
	for i, label := range ui.panel.labels {
		b.WriteString(optionStyle.Render(fmt.Sprintf("%d. %s", i+1, label)) + "\n")
	}
	return b.String()
}

func (ui ConsoleUI) sidebarView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("JOURNAL") + "\n\n")

	b.WriteString("Inventory:\n")
	writeList(&b, ui.panel.inventory)
	b.WriteString("\nQuests:\n")
	writeList(&b, ui.panel.quests)
	b.WriteString("\nEvents:\n")
	writeList(&b, ui.panel.events)

	if active := ui.world.active(); active != nil {
		b.WriteString("\nNearby:\n")
		b.WriteString("  " + active.profile.Name + "\n")
		b.WriteString(laneStyle.Render("  "+narrative.Perspective(active.profile)) + "\n")
	}
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString(laneStyle.Render("  none") + "\n")
		return
	}
	for _, item := range items {
		b.WriteString("  • " + item + "\n")
	}
}

func (ui ConsoleUI) statusLine() string {
	help := "←/→ move  enter talk  1-3 respond  ctrl+y copy  q quit"
	if ui.status != "" {
		return help + "  |  " + ui.status
	}
	return help
}
