package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/savioxavier/termlink"
)

const (
	listPanePercent = 35
	cursorCharacter = ">"
	folderIcon      = "▸ "
	taskIcon        = "• "
)

var viewTabs = []string{"List", "Calendar", "Filter"}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	width := m.windowWidth
	if width <= 0 {
		width = defaultWindowWidth
	}

	height := m.windowHeight
	if height <= 0 {
		height = defaultWindowHeight
	}

	cur := m.current()

	switch m.wizard.Mode() {
	case ModeHelp:
		return m.placeBox(m.renderHelpOverlay(), width, height)
	case ModeNewMenu:
		return m.placeBox(renderMenu("New", []key.Binding{commandKeyMap.NewFolder, commandKeyMap.NewTask}), width, height)
	case ModeEditMenu:
		return m.placeBox(renderMenu("Edit task", []key.Binding{commandKeyMap.EditTitle, commandKeyMap.EditDetails, commandKeyMap.EditStatus}), width, height)
	case ModeAwaitingField:
		return m.placeBox(m.renderPrompt(cur), width, height)
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)

	contentHeight := max(minVisibleHeight, height-lipgloss.Height(header)-lipgloss.Height(footer))

	listWidth := max(minPaneWidth, width*listPanePercent/100)
	detailWidth := max(minPaneWidth, width-listWidth)

	list := renderListPane(cur, listWidth, contentHeight)
	detail := m.renderDetailPane(cur, detailWidth, contentHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m model) placeBox(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderHeader shows the app name, the view tabs and the current path
func (m model) renderHeader(width int) string {
	tabs := make([]string, 0, len(viewTabs))

	for i, name := range viewTabs {
		label := name
		if i == 0 {
			label = "[tab] " + name
		}

		if i == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	crumb := breadcrumbStyle.Render(" " + breadcrumb(m.path))
	line := titleStyle.Render(" rtasks ") + strings.Join(tabs, "") + crumb

	return headerBarStyle.Width(width).Render(ansi.Truncate(line, width, "…"))
}

func breadcrumb(path []string) string {
	if len(path) == 0 {
		return "/"
	}

	return "/ " + strings.Join(path, " / ")
}

func (m model) renderFooter(width int) string {
	if m.notice != "" {
		return noticeStyle.Width(width).Render(ansi.Truncate(" "+m.notice, width, "…"))
	}

	h := m.help
	h.Width = width

	return helpBarStyle.Width(width).Render(h.View(idleKeyMap))
}

// renderListPane paints the unified listing of cur with the cursor kept in view
func renderListPane(cur *Folder, width, height int) string {
	innerWidth := max(1, width-2)
	innerHeight := max(1, height-2)

	entries := cur.Entries()
	rows := innerHeight - 1

	var lines []string
	lines = append(lines, paneTitleStyle.Render(fmt.Sprintf("Tasks (%d)", len(entries))))

	if len(entries) == 0 {
		lines = append(lines, dimTextStyle.Render("Empty. Press space for commands."))
	}

	start, end := visibleRange(cur.Cursor(), len(entries), rows)

	for _, entry := range entries[start:end] {
		lines = append(lines, renderEntry(entry, innerWidth))
	}

	content := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(strings.Join(lines, "\n"))

	return paneStyle.Render(normalizeViewHeight(content, innerHeight))
}

func renderEntry(entry Entry, width int) string {
	cursor := " "
	if entry.Selected {
		cursor = cursorStyle.Render(cursorCharacter)
	}

	icon, style := taskIcon, taskStyle
	if entry.Kind == EntryFolder {
		icon, style = folderIcon, folderStyle
	}

	label := ansi.Truncate(icon+entry.Label, max(1, width-2), "…")
	line := style.Render(label)

	if entry.Selected {
		line = selectedStyle.Inherit(style).Render(label)
	}

	return cursor + " " + line
}

// visibleRange returns the slice of rows to paint so the cursor row stays
// visible in a window of height rows.
func visibleRange(cursor, total, height int) (start, end int) {
	if total == 0 || height <= 0 {
		return 0, 0
	}

	if total <= height {
		return 0, total
	}

	start = max(0, cursor-(height-1))
	end = min(total, start+height)

	return start, end
}

// renderDetailPane shows the selected task, or a preview of the selected folder
func (m model) renderDetailPane(cur *Folder, width, height int) string {
	innerWidth := max(1, width-2)
	innerHeight := max(1, height-2)

	var lines []string

	if task := cur.SelectedTask(); task != nil {
		lines = append(lines,
			paneTitleStyle.Render("Task details"),
			detailTitleStyle.Render(ansi.Truncate(task.Title, innerWidth, "…")),
			statusStyle(task.Status).Render(task.Status.Label),
			dimTextStyle.Render(strings.Repeat("─", innerWidth)),
		)

		vp := m.viewport
		vp.Width = innerWidth
		vp.Height = max(1, innerHeight-len(lines))
		vp.SetContent(lipgloss.NewStyle().Width(innerWidth).Render(renderBody(task.Body)))
		lines = append(lines, vp.View())
	} else if folder := cur.SelectedFolder(); folder != nil {
		lines = append(lines, paneTitleStyle.Render("Inner tasks"))

		entries := folder.Entries()
		if len(entries) == 0 {
			lines = append(lines, dimTextStyle.Render("Empty folder"))
		}

		_, end := visibleRange(0, len(entries), innerHeight-1)
		for _, entry := range entries[:end] {
			entry.Selected = false
			lines = append(lines, renderEntry(entry, innerWidth))
		}
	}

	content := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(strings.Join(lines, "\n"))

	return paneStyle.Render(normalizeViewHeight(content, innerHeight))
}

func normalizeViewHeight(view string, height int) string {
	if height <= 0 {
		return ""
	}

	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderMenuItems(bindings []key.Binding) []string {
	lines := make([]string, 0, len(bindings))

	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, menuKeyStyle.Render(fmt.Sprintf("<%s>", h.Key))+" "+menuDescStyle.Render(h.Desc))
	}

	return lines
}

func renderMenu(title string, bindings []key.Binding) string {
	lines := []string{boxTitleStyle.Render(title), ""}
	lines = append(lines, renderMenuItems(bindings)...)
	lines = append(lines, "", dimTextStyle.Render("any other key closes"))

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderHelpOverlay() string {
	edit := commandKeyMap.Edit
	if m.current().SelectedFolder() != nil {
		edit = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename folder"))
	}

	lines := []string{boxTitleStyle.Render("Commands"), ""}
	lines = append(lines, renderMenuItems([]key.Binding{
		commandKeyMap.Quit,
		commandKeyMap.New,
		edit,
		commandKeyMap.Delete,
		commandKeyMap.Save,
	})...)

	if m.store != nil {
		link := termlink.Link(m.store.Path(), "file://"+m.store.Path())
		lines = append(lines, "", dimTextStyle.Render("store ")+link)
	}

	lines = append(lines, "", dimTextStyle.Render("any other key closes"))

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderPrompt draws the open text prompt with the context it edits
func (m model) renderPrompt(cur *Folder) string {
	request, _ := m.wizard.Request()
	input, _ := m.wizard.Input()

	style, title := boxStyle, boxTitleStyle.Render(request.Prompt())
	if request.kind == requestConfirmDelete {
		style, title = dangerBoxStyle, dangerStyle.Render(request.Prompt())
	}

	lines := []string{title}

	if hint := promptContext(request, cur, m.wizard.Pending()); hint != "" {
		lines = append(lines, dimTextStyle.Render(hint))
	}

	h := m.help
	lines = append(lines, "", input.View(), "", h.ShortHelpView(promptKeyMap.ShortHelp()))

	return style.Width(m.inputWidth() + 6).Render(strings.Join(lines, "\n"))
}

func promptContext(request inputRequest, cur *Folder, pending Task) string {
	switch request.kind {
	case requestRenameFolder:
		if folder := cur.SelectedFolder(); folder != nil {
			return "Current: " + folder.Name
		}
	case requestNewTask:
		if request.step == stepDetails {
			return "Title: " + pending.Title
		}
	case requestEditTask:
		if task := cur.SelectedTask(); task != nil {
			return "Task: " + task.Title
		}
		return "No task selected"
	case requestConfirmDelete:
		if folder := cur.SelectedFolder(); folder != nil {
			return "Folder " + folder.Name + " and everything inside it"
		}
		if task := cur.SelectedTask(); task != nil {
			return "Task " + task.Title
		}
		return "Nothing selected"
	}

	return ""
}
