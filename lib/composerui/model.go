// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/stencilcms/composer/lib/composer"
	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
	"github.com/stencilcms/composer/lib/siteview"
)

// FocusRegion identifies which part of the screen receives keys.
type FocusRegion int

const (
	// FocusList means navigation keys move the list cursor.
	FocusList FocusRegion = iota
	// FocusFilter means keystrokes go to the explorer quick filter.
	FocusFilter
	// FocusSearch means keystrokes go to the search input.
	FocusSearch
	// FocusEditor means keystrokes go to the page editor.
	FocusEditor
)

// listWidthRatio is the share of the width given to the left pane.
const listWidthRatio = 0.40

// defaultTimeout bounds service calls made from the UI.
const defaultTimeout = 30 * time.Second

// defaultPreviewWidth applies before the first window size message.
const defaultPreviewWidth = 80

// sessionMsg signals that the store installed a new session.
type sessionMsg struct{}

// actionResultMsg is sent when an asynchronous action completes.
type actionResultMsg struct {
	operation string
	err       error
}

// statusFadeMsg clears the status bar if nothing newer replaced it.
type statusFadeMsg struct {
	sequence int
}

// Options configures a Model.
type Options struct {
	// Context bounds every service call the UI starts. Defaults to
	// context.Background().
	Context context.Context

	// Timeout bounds a single service call. Defaults to 30s.
	Timeout time.Duration

	// SkipInitialLoad leaves loading to the caller, e.g. when the
	// session was loaded before the program started.
	SkipInitialLoad bool
}

// Model is the bubbletea model of the composer.
type Model struct {
	ctx       context.Context
	timeout   time.Duration
	loadFirst bool

	actions   *composer.Actions
	store     *composer.Store
	updates   <-chan *session.Session
	tabs      *composer.Tabs
	navigator *composer.Navigator

	session *session.Session
	theme   Theme
	keys    KeyMap

	width  int
	height int
	ready  bool

	view         View
	focus        FocusRegion
	cursor       int
	scrollOffset int

	rows    []explorerRow
	entries []listEntry

	filterInput textinput.Model
	searchInput textinput.Model
	editor      editor
	detail      viewport.Model

	status         string
	statusLevel    slog.Level
	statusSequence int
}

// NewModel returns a model driving actions. It subscribes to the
// actions' store immediately.
func NewModel(actions *composer.Actions, options Options) Model {
	if options.Context == nil {
		options.Context = context.Background()
	}
	if options.Timeout <= 0 {
		options.Timeout = defaultTimeout
	}

	filterInput := textinput.New()
	filterInput.Prompt = "filter: "
	filterInput.Placeholder = "article name"
	searchInput := textinput.New()
	searchInput.Prompt = "search: "
	searchInput.Placeholder = "keyword"

	tabs := &composer.Tabs{}
	model := Model{
		ctx:         options.Context,
		timeout:     options.Timeout,
		loadFirst:   !options.SkipInitialLoad,
		actions:     actions,
		store:       actions.Store(),
		updates:     actions.Store().Subscribe(),
		tabs:        tabs,
		navigator:   composer.NewNavigator(tabs),
		session:     actions.Store().Session(),
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		filterInput: filterInput,
		searchInput: searchInput,
		editor:      newEditor(),
	}
	model.refresh()
	return model
}

// Init implements tea.Model: start listening to the store and run the
// first load.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{listenForSession(model.updates)}
	if model.loadFirst {
		commands = append(commands, model.runAction("load", model.actions.HandleLoad))
	}
	return tea.Batch(commands...)
}

// listenForSession blocks until the store installs a session.
func listenForSession(updates <-chan *session.Session) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return sessionMsg{}
	}
}

// runAction runs call off the event loop with the model's timeout.
func (model Model) runAction(operation string, call func(context.Context) error) tea.Cmd {
	ctx, timeout := model.ctx, model.timeout
	return func() tea.Msg {
		callContext, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return actionResultMsg{operation: operation, err: call(callContext)}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focus {
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusSearch:
			return model.handleSearchKeys(message)
		case FocusEditor:
			return model.handleEditorKeys(message)
		}
		return model.handleListKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()

	case sessionMsg:
		// The store is read directly so a queued notification can
		// never install an older snapshot than the current one.
		model.sync()
		return model, listenForSession(model.updates)

	case actionResultMsg:
		if message.err != nil {
			command := model.setStatus(message.err.Error(), slog.LevelError)
			return model, command
		}
		if message.operation == "save" {
			command := model.setStatus("saved", slog.LevelInfo)
			return model, command
		}

	case logRecordMsg:
		command := model.setStatus(message.Summary, message.Level)
		return model, command

	case statusFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}
	}
	return model, nil
}

// sync installs the store's current session and rebuilds derived UI
// state.
func (model *Model) sync() {
	model.session = model.store.Session()
	model.refresh()
}

// refresh rebuilds the listing and closes tabs and editors whose
// entities are gone.
func (model *Model) refresh() {
	current := model.session
	switch model.view {
	case ViewExplorer:
		model.rows = explorerRows(current, model.filterInput.Value())
		model.entries = nil
	case ViewLinks:
		model.entries = linkEntries(current)
	case ViewWorkflows:
		model.entries = workflowEntries(current)
	case ViewReleases:
		model.entries = releaseEntries(current)
	case ViewSearch:
		model.entries = searchEntries(current, model.searchInput.Value())
	}

	if current.Status() == session.StatusLoaded {
		model.tabs.Retain(func(articleID site.ArticleID) bool {
			_, exists := current.ArticleView(articleID)
			return exists
		})
		if model.editor.open {
			if _, exists := current.Site().Pages[model.editor.pageID]; !exists {
				model.editor.close()
				if model.focus == FocusEditor {
					model.focus = FocusList
				}
			}
		}
	}

	model.cursor = model.clampedIndex(model.cursor)
	model.ensureCursorVisible()
	model.syncDetail()
}

func (model *Model) listLength() int {
	if model.view == ViewExplorer {
		return len(model.rows)
	}
	return len(model.entries)
}

func (model *Model) clampedIndex(position int) int {
	length := model.listLength()
	if length == 0 {
		return 0
	}
	return min(max(position, 0), length-1)
}

// setStatus shows text in the status bar until it fades.
func (model *Model) setStatus(text string, level slog.Level) tea.Cmd {
	model.status = text
	model.statusLevel = level
	model.statusSequence++
	sequence := model.statusSequence
	return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{sequence: sequence}
	})
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.ViewExplorer):
		model.switchView(ViewExplorer)
	case key.Matches(message, model.keys.ViewLinks):
		model.switchView(ViewLinks)
	case key.Matches(message, model.keys.ViewWorkflows):
		model.switchView(ViewWorkflows)
	case key.Matches(message, model.keys.ViewReleases):
		model.switchView(ViewReleases)
	case key.Matches(message, model.keys.ViewSearch):
		model.switchView(ViewSearch)
		model.focus = FocusSearch
		command := model.searchInput.Focus()
		return model, command

	case key.Matches(message, model.keys.FilterActivate):
		if model.view != ViewExplorer {
			model.switchView(ViewExplorer)
		}
		model.focus = FocusFilter
		model.cursor = 0
		model.scrollOffset = 0
		model.updatePaneSizes()
		command := model.filterInput.Focus()
		return model, command

	case key.Matches(message, model.keys.FilterClear):
		if model.filterInput.Value() != "" {
			model.filterInput.SetValue("")
			model.updatePaneSizes()
			model.refresh()
		}

	case key.Matches(message, model.keys.CycleLocale):
		model.actions.HandleLocaleFilter(nextLocale(model.session.Views().Locales, model.session.Filter().Locale))
		model.sync()

	case key.Matches(message, model.keys.ToggleDevMode):
		model.actions.HandleDevMode(!model.session.DevMode())
		model.sync()

	case key.Matches(message, model.keys.Reload):
		return model, model.runAction("reload", model.actions.HandleLoadSite)

	case key.Matches(message, model.keys.Open):
		command := model.openSelected()
		return model, command

	case key.Matches(message, model.keys.NextTab):
		model.tabs.Cycle(1)
		command := model.openActiveTab(false)
		return model, command
	case key.Matches(message, model.keys.PrevTab):
		model.tabs.Cycle(-1)
		command := model.openActiveTab(false)
		return model, command
	case key.Matches(message, model.keys.CloseTab):
		if tab, ok := model.tabs.Active(); ok {
			model.tabs.Close(tab.ID)
			model.editor.close()
			command := model.openActiveTab(false)
			return model, command
		}

	case message.String() == "tab":
		if model.editor.open {
			model.focus = FocusEditor
			command := model.editor.area.Focus()
			return model, command
		}

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.visibleHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.visibleHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-model.listLength())
	case key.Matches(message, model.keys.End):
		model.moveCursor(model.listLength())
	}
	return model, nil
}

func (model *Model) switchView(view View) {
	if model.view == view {
		return
	}
	model.view = view
	model.cursor = 0
	model.scrollOffset = 0
	model.updatePaneSizes()
	model.refresh()
}

func (model *Model) moveCursor(delta int) {
	model.cursor = model.clampedIndex(model.cursor + delta)
	model.ensureCursorVisible()
	model.syncDetail()
}

// nextLocale cycles the locale filter through every locale and then
// back to no filter.
func nextLocale(locales []site.Locale, current site.LocaleID) site.LocaleID {
	if len(locales) == 0 {
		return ""
	}
	if current == "" {
		return locales[0].ID
	}
	index := slices.IndexFunc(locales, func(locale site.Locale) bool { return locale.ID == current })
	if index < 0 || index == len(locales)-1 {
		return ""
	}
	return locales[index+1].ID
}

// selectedArticle returns the article under the cursor, if any.
func (model *Model) selectedArticle() (*siteview.ArticleView, bool) {
	if model.view == ViewExplorer {
		if model.cursor < len(model.rows) {
			return model.rows[model.cursor].Article, true
		}
		return nil, false
	}
	if model.cursor < len(model.entries) && model.entries[model.cursor].Article != "" {
		return model.session.ArticleView(model.entries[model.cursor].Article)
	}
	return nil, false
}

// openSelected opens the selected article's pages in a tab. The locale
// filter's locale is preferred when the article has a page in it.
func (model *Model) openSelected() tea.Cmd {
	article, ok := model.selectedArticle()
	if !ok {
		return nil
	}
	var locale site.LocaleID
	if filter := model.session.Filter(); filter.Active() && article.HasLocale(filter.Locale) {
		locale = filter.Locale
	} else if len(article.Pages) > 0 {
		locale = article.Pages[0].Page.Body.Locale
	}
	model.navigator.HandleInTab(article.Article, session.NavArticlePages, locale, false)
	return model.openActiveTab(true)
}

// openActiveTab binds the editor to the active tab's page. With focus
// set, the editor takes keyboard focus.
func (model *Model) openActiveTab(focus bool) tea.Cmd {
	tab, ok := model.tabs.Active()
	if !ok {
		model.editor.close()
		model.focus = FocusList
		return nil
	}
	article, exists := model.session.ArticleView(tab.ID)
	if !exists {
		model.editor.close()
		return nil
	}
	page, found := article.PageByLocale(tab.Data.Nav.Value)
	if !found {
		if len(article.Pages) == 0 {
			model.editor.close()
			model.focus = FocusList
			return model.setStatus(fmt.Sprintf("%s has no pages", article.Name()), slog.LevelInfo)
		}
		page = article.Pages[0]
	}

	pageID := page.Page.ID
	model.actions.HandlePageOpen(pageID)
	model.sync()
	update, _ := model.session.Page(pageID)
	command := model.editor.load(pageID, article.ID(), page.Page.Body.Locale, update.Value)
	if !focus {
		model.editor.area.Blur()
		return nil
	}
	model.focus = FocusEditor
	return command
}

func (model Model) handleEditorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	pageID := model.editor.pageID
	switch {
	case message.String() == "ctrl+c":
		return model, tea.Quit

	case key.Matches(message, model.keys.Save):
		return model, model.runAction("save", func(ctx context.Context) error {
			return model.actions.SavePage(ctx, pageID)
		})

	case key.Matches(message, model.keys.Discard):
		model.actions.HandlePageUpdateRemove(pageID)
		model.sync()
		if page, exists := model.session.Site().Pages[pageID]; exists {
			model.editor.reset(page.Body.Content)
		}
		model.editor.area.Blur()
		model.focus = FocusList
		return model, nil

	case message.String() == "tab":
		model.editor.area.Blur()
		model.focus = FocusList
		return model, nil

	case key.Matches(message, model.keys.NextPage):
		article, exists := model.session.ArticleView(model.editor.article)
		if !exists || len(article.Pages) < 2 {
			return model, nil
		}
		index := slices.IndexFunc(article.Pages, func(page siteview.PageView) bool {
			return page.Page.ID == pageID
		})
		next := article.Pages[(index+1)%len(article.Pages)]
		model.navigator.HandleInTab(article.Article, session.NavArticlePages, next.Page.Body.Locale, false)
		command := model.openActiveTab(true)
		return model, command

	case key.Matches(message, model.keys.TogglePageDev):
		return model, model.runAction("toggle page dev mode", func(ctx context.Context) error {
			return model.actions.TogglePageDevMode(ctx, pageID)
		})
	}

	command, changed := model.editor.update(message)
	if changed {
		model.actions.HandlePageUpdate(pageID, model.editor.value())
		model.sync()
	}
	return model, command
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.filterInput.SetValue("")
		model.filterInput.Blur()
		model.focus = FocusList
		model.updatePaneSizes()
		model.refresh()
		return model, nil
	case tea.KeyEnter:
		model.filterInput.Blur()
		model.focus = FocusList
		return model, nil
	case tea.KeyUp, tea.KeyDown:
		if message.Type == tea.KeyUp {
			model.moveCursor(-1)
		} else {
			model.moveCursor(1)
		}
		return model, nil
	}

	var command tea.Cmd
	model.filterInput, command = model.filterInput.Update(message)
	model.cursor = 0
	model.scrollOffset = 0
	model.refresh()
	return model, command
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.searchInput.SetValue("")
		model.searchInput.Blur()
		model.focus = FocusList
		model.refresh()
		return model, nil
	case tea.KeyEnter:
		model.searchInput.Blur()
		model.focus = FocusList
		return model, nil
	}

	var command tea.Cmd
	model.searchInput, command = model.searchInput.Update(message)
	model.cursor = 0
	model.scrollOffset = 0
	model.refresh()
	return model, command
}

func (model Model) listWidth() int {
	return int(float64(model.width) * listWidthRatio)
}

// visibleHeight is the number of list rows that fit on screen: the
// height minus header, tab strip, separator and status bar, minus the
// input line while one is shown.
func (model Model) visibleHeight() int {
	height := model.height - 4
	if model.inputVisible() {
		height--
	}
	return max(height, 1)
}

func (model Model) inputVisible() bool {
	switch model.view {
	case ViewExplorer:
		return model.focus == FocusFilter || model.filterInput.Value() != ""
	case ViewSearch:
		return true
	}
	return false
}

func (model *Model) updatePaneSizes() {
	if !model.ready {
		return
	}
	rightWidth := model.width - model.listWidth() - 1
	bodyHeight := max(model.height-4, 1)
	model.editor.setSize(rightWidth, bodyHeight)
	model.detail.Width = rightWidth
	model.detail.Height = bodyHeight
	model.filterInput.Width = max(model.listWidth()-len(model.filterInput.Prompt)-1, 1)
	model.searchInput.Width = max(model.listWidth()-len(model.searchInput.Prompt)-1, 1)
	model.ensureCursorVisible()
}

func (model *Model) ensureCursorVisible() {
	height := model.visibleHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// syncDetail fills the detail pane for the selected row.
func (model *Model) syncDetail() {
	var lines []string
	if model.view == ViewExplorer {
		if article, ok := model.selectedArticle(); ok {
			width := model.detail.Width
			if width <= 0 {
				width = defaultPreviewWidth
			}
			lines = articleDetail(model.session, article, model.theme, width, termenv.ANSI256)
		}
	} else if model.cursor < len(model.entries) {
		lines = model.entries[model.cursor].Detail
	}
	model.detail.SetContent(strings.Join(lines, "\n"))
	model.detail.GotoTop()
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	switch model.session.Status() {
	case session.StatusEmpty:
		return model.renderCentered("Loading site…", "")
	case session.StatusNoConnection:
		return model.renderCentered(
			"No connection to the content service",
			"r retry  q quit",
		)
	}
	sections := []string{model.renderHeader(), model.renderTabStrip()}

	left := model.renderListPane()
	divider := model.renderDivider()
	right := model.renderRightPane()
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right))

	sections = append(sections, lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width)))
	sections = append(sections, model.renderStatus())
	return strings.Join(sections, "\n")
}

func (model Model) renderCentered(title, hint string) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	hintStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	content := titleStyle.Render(title)
	if hint != "" {
		content += "\n\n" + hintStyle.Render(hint)
	}
	if model.status != "" {
		content += "\n\n" + model.statusStyle().Render(ansi.Truncate(model.status, model.width, "…"))
	}
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders the view tabs on the left and the activity
// summary on the right.
func (model Model) renderHeader() string {
	separator := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render("─")
	active := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := strings.Repeat(separator, 3)
	for _, definition := range viewDefs {
		style := inactive
		if definition.view == model.view {
			style = active
		}
		left += " " + style.Render(definition.label) + " " + separator
	}

	summary := siteview.Summarize(model.session.Views())
	stats := fmt.Sprintf("%d articles  %d pages  %d links  %d workflows",
		summary.Articles, summary.Pages, summary.Links, summary.Workflows)
	if summary.Problems > 0 {
		stats += fmt.Sprintf("  %d problems", summary.Problems)
	}
	if filter := model.session.Filter(); filter.Active() {
		stats += "  locale:" + string(filter.Locale)
	}
	if model.session.DevMode() {
		stats += "  [dev]"
	}
	right := " " + faint.Render(stats) + " " + separator

	fill := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	return left + strings.Repeat(separator, max(fill, 1)) + right
}

// renderTabStrip renders the open article tabs. Page tabs of articles
// with unsaved edits carry a "*".
func (model Model) renderTabStrip() string {
	tabs := model.tabs.All()
	if len(tabs) == 0 {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" no open articles")
	}
	active, _ := model.tabs.Active()
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.SelectedForeground).Background(model.theme.SelectedBackground)
	inactiveStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	unsavedStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Unsaved)

	var parts []string
	for _, tab := range tabs {
		style := inactiveStyle
		if tab.ID == active.ID {
			style = activeStyle
		}
		label := " " + tab.Label
		if nav := tab.Data.Nav; nav.Value != "" {
			label += " [" + string(nav.Value) + "]"
		}
		label += " "
		rendered := style.Render(label)
		if tab.TrackUnsaved && !model.session.IsArticleSaved(tab.ID) {
			rendered = unsavedStyle.Render("*") + rendered
		}
		parts = append(parts, rendered)
	}
	return ansi.Truncate(strings.Join(parts, " "), model.width, "…")
}

func (model Model) renderListPane() string {
	width := model.listWidth()
	height := model.visibleHeight()
	var lines []string

	if model.inputVisible() {
		input := model.filterInput
		if model.view == ViewSearch {
			input = model.searchInput
		}
		lines = append(lines, ansi.Truncate(input.View(), width, "…"))
	}

	length := model.listLength()
	if length == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.emptyText()))
	}
	end := min(model.scrollOffset+height, length)
	for index := model.scrollOffset; index < end; index++ {
		selected := index == model.cursor && model.focus != FocusEditor
		if model.view == ViewExplorer {
			lines = append(lines, renderExplorerRow(model.rows[index], model.theme, width, selected))
		} else {
			lines = append(lines, model.renderEntry(model.entries[index], width, selected))
		}
	}

	return lipgloss.NewStyle().Width(width).Height(model.height - 4).Render(strings.Join(lines, "\n"))
}

func (model Model) emptyText() string {
	switch model.view {
	case ViewExplorer:
		if model.filterInput.Value() != "" {
			return " no articles match"
		}
		return " no articles"
	case ViewSearch:
		if strings.TrimSpace(model.searchInput.Value()) == "" {
			return " type to search"
		}
		return " no results"
	default:
		return " nothing here"
	}
}

func (model Model) renderEntry(entry listEntry, width int, selected bool) string {
	base := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if selected {
		base = base.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground).Bold(true)
	}
	title := base.Render("  " + entry.Title)
	if entry.Missing {
		title = base.Foreground(model.theme.Missing).Render("  " + entry.Title + " (missing)")
	}
	line := title
	if entry.DevMode {
		line += base.Foreground(model.theme.DevMode).Render(" [dev]")
	}
	if entry.Suffix != "" {
		line += base.Foreground(model.theme.FaintText).Render("  " + entry.Suffix)
	}
	rendered := ansi.Truncate(line, width, "…")
	if gap := width - ansi.StringWidth(rendered); gap > 0 {
		rendered += base.Render(strings.Repeat(" ", gap))
	}
	return rendered
}

func (model Model) renderDivider() string {
	return renderScrollbar(model.theme, max(model.height-4, 1), model.listLength(),
		model.visibleHeight(), model.scrollOffset, model.focus != FocusEditor)
}

func (model Model) renderRightPane() string {
	if model.editor.open && (model.view == ViewExplorer || model.focus == FocusEditor) {
		title := model.session.ArticleName(model.editor.article).Name
		saved := true
		if update, tracked := model.session.Page(model.editor.pageID); tracked {
			saved = update.Saved
		}
		return model.editor.view(model.theme, title, saved, model.focus == FocusEditor)
	}
	return model.detail.View()
}

func (model Model) statusStyle() lipgloss.Style {
	switch {
	case model.statusLevel >= slog.LevelError:
		return lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	case model.statusLevel >= slog.LevelWarn:
		return lipgloss.NewStyle().Foreground(model.theme.WarnText)
	default:
		return lipgloss.NewStyle().Foreground(model.theme.NormalText)
	}
}

// renderStatus renders the latest status message, or key help.
func (model Model) renderStatus() string {
	if model.status != "" {
		return model.statusStyle().Render(ansi.Truncate(" "+model.status, model.width, "…"))
	}

	focus := "LIST"
	help := "q quit  ↑↓ move  enter open  1-4 views  s search  / filter  L locale  D dev  r reload  {} tabs"
	switch model.focus {
	case FocusFilter:
		focus = "FILTER"
		help = "enter keep  esc clear"
	case FocusSearch:
		focus = "SEARCH"
		help = "enter browse results  esc clear"
	case FocusEditor:
		focus = "EDIT"
		help = "C-s save  esc discard  C-n next locale  C-t page dev mode  tab list"
	}
	if model.session.HasUnsavedChanges() {
		help += "  (unsaved changes)"
	}
	text := fmt.Sprintf(" [%s] %s", focus, help)
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(ansi.Truncate(text, model.width, "…"))
}
