package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/slate/internal/ipc"
)

// moveStep is the surface distance one arrow key press requests. The
// daemon still snaps, clamps and collision-checks the result.
const moveStep = 10

type overlay int

const (
	overlayNone overlay = iota
	overlaySave
	overlayLoad
)

// model is the root bubbletea model for the board sandbox.
type model struct {
	client *ipc.Client

	connected  bool
	status     *ipc.StatusData
	components []ipc.ComponentInfo
	selected   int
	lastError  string
	nextID     int

	overlay      overlay
	saveForm     *huh.Form
	snapshotName string
	loadList     list.Model

	width  int
	height int
}

type snapshotItem string

func (s snapshotItem) Title() string       { return string(s) }
func (s snapshotItem) Description() string { return "saved arrangement" }
func (s snapshotItem) FilterValue() string { return string(s) }

func newModel() model {
	m := model{
		client: ipc.NewClient(),
		nextID: 1,
	}
	m.refresh()
	return m
}

// refresh pulls the authoritative state from the daemon.
func (m *model) refresh() {
	status, err := m.client.GetStatus()
	if err != nil {
		m.connected = false
		m.lastError = err.Error()
		return
	}
	m.connected = true
	m.status = status

	data, err := m.client.ListComponents()
	if err != nil {
		m.lastError = err.Error()
		return
	}
	m.components = data.Components
	if m.selected >= len(m.components) {
		m.selected = len(m.components) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) selectedComponent() *ipc.ComponentInfo {
	if len(m.components) == 0 || m.selected >= len(m.components) {
		return nil
	}
	return &m.components[m.selected]
}

// do runs an operation against the daemon and refreshes on success.
func (m *model) do(op func() error) {
	if err := op(); err != nil {
		m.lastError = err.Error()
		return
	}
	m.lastError = ""
	m.refresh()
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.loadList.SetSize(size.Width-4, size.Height-6)
		return m, nil
	}

	switch m.overlay {
	case overlaySave:
		return m.updateSaveOverlay(msg)
	case overlayLoad:
		return m.updateLoadOverlay(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.refresh()
	case "tab", "j":
		if len(m.components) > 0 {
			m.selected = (m.selected + 1) % len(m.components)
		}
	case "shift+tab", "k":
		if len(m.components) > 0 {
			m.selected = (m.selected - 1 + len(m.components)) % len(m.components)
		}
	case "up", "down", "left", "right":
		m.moveSelected(key.String())
	case "a":
		id := fmt.Sprintf("note-%d", m.nextID)
		m.nextID++
		m.do(func() error {
			_, err := m.client.AddComponent(ipc.AddPayload{
				ID: id, Kind: "note",
				Width: 120, Height: 80, AutoPlace: true,
			})
			return err
		})
	case "d":
		if c := m.selectedComponent(); c != nil {
			id := c.ID
			m.do(func() error { return m.client.RemoveComponent(id) })
		}
	case "l":
		if c := m.selectedComponent(); c != nil {
			id, locked := c.ID, c.Locked
			m.do(func() error {
				if locked {
					return m.client.UnlockComponent(id)
				}
				return m.client.LockComponent(id)
			})
		}
	case "v":
		if c := m.selectedComponent(); c != nil {
			id, visible := c.ID, c.Visible
			m.do(func() error {
				if visible {
					return m.client.HideComponent(id)
				}
				return m.client.ShowComponent(id)
			})
		}
	case "f":
		if c := m.selectedComponent(); c != nil {
			id := c.ID
			m.do(func() error { return m.client.BringToFront(id) })
		}
	case "b":
		if c := m.selectedComponent(); c != nil {
			id := c.ID
			m.do(func() error { return m.client.SendToBack(id) })
		}
	case "s":
		m.snapshotName = ""
		m.saveForm = newSaveForm(&m.snapshotName)
		m.overlay = overlaySave
		return m, m.saveForm.Init()
	case "o":
		m.openLoadOverlay()
	}

	return m, nil
}

// moveSelected drives a synthetic one-step drag through the daemon's
// constraint pipeline.
func (m *model) moveSelected(direction string) {
	c := m.selectedComponent()
	if c == nil {
		return
	}

	x, y := c.X, c.Y
	switch direction {
	case "up":
		y -= moveStep
	case "down":
		y += moveStep
	case "left":
		x -= moveStep
	case "right":
		x += moveStep
	}

	id := c.ID
	m.do(func() error {
		_, err := m.client.MoveComponent(id, x, y)
		return err
	})
}

func newSaveForm(name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Snapshot name").
				Description("The arrangement is saved under this name.").
				Value(name),
		),
	)
}

func (m model) updateSaveOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.overlay = overlayNone
			return m, nil
		}
	}

	form, cmd := m.saveForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.saveForm = f
	}
	if m.saveForm.State == huh.StateCompleted {
		m.overlay = overlayNone
		if m.snapshotName != "" {
			name := m.snapshotName
			m.do(func() error { return m.client.SaveSnapshot(name) })
		}
	}
	return m, cmd
}

func (m *model) openLoadOverlay() {
	names, err := m.client.ListSnapshots()
	if err != nil {
		m.lastError = err.Error()
		return
	}
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = snapshotItem(name)
	}

	w, h := m.width-4, m.height-6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.loadList = list.New(items, list.NewDefaultDelegate(), w, h)
	m.loadList.Title = "Load snapshot"
	m.overlay = overlayLoad
}

func (m model) updateLoadOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.overlay = overlayNone
			return m, nil
		case "enter":
			if item, ok := m.loadList.SelectedItem().(snapshotItem); ok {
				name := string(item)
				m.do(func() error { return m.client.LoadSnapshot(name) })
			}
			m.overlay = overlayNone
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.loadList, cmd = m.loadList.Update(msg)
	return m, cmd
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View implements tea.Model.
func (m model) View() string {
	switch m.overlay {
	case overlaySave:
		return m.saveForm.View()
	case overlayLoad:
		return m.loadList.View()
	}

	if !m.connected {
		return titleStyle.Render("slate") + "\n\n" +
			errorStyle.Render("daemon not reachable: "+m.lastError) + "\n\n" +
			helpStyle.Render("start it with `slate serve`, then press r to retry, q to quit")
	}

	canvasW := m.width - 2
	canvasH := m.height - 7
	if canvasW < 20 {
		canvasW = 20
	}
	if canvasH < 6 {
		canvasH = 6
	}

	var selectedID string
	if c := m.selectedComponent(); c != nil {
		selectedID = c.ID
	}

	header := titleStyle.Render("slate") + "  " +
		statusStyle.Render(fmt.Sprintf("%.0fx%.0f grid=%.0f components=%d",
			m.status.SurfaceWidth, m.status.SurfaceHeight, m.status.GridSize, len(m.components)))

	lines := renderCanvas(m.components, m.status.SurfaceWidth, m.status.SurfaceHeight, canvasW, canvasH, selectedID)

	detail := ""
	if c := m.selectedComponent(); c != nil {
		detail = selectedStyle.Render(describeComponent(*c))
	}

	errLine := ""
	if m.lastError != "" {
		errLine = errorStyle.Render(m.lastError)
	}

	help := helpStyle.Render("tab: select  arrows: move  a: add  d: delete  l: lock  v: visibility  f/b: stack  s: save  o: load  q: quit")

	out := header + "\n"
	for _, line := range lines {
		out += line + "\n"
	}
	out += detail + "\n" + errLine + "\n" + help
	return out
}
