// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clogs-dev/clogs/lib/clock"
	"github.com/clogs-dev/clogs/lib/timeline"
	"github.com/clogs-dev/clogs/lib/tui"
)

// FocusRegion identifies which component receives keyboard input.
type FocusRegion int

const (
	// FocusList routes keys to the container list.
	FocusList FocusRegion = iota

	// FocusFilter routes keys to the filter input.
	FocusFilter

	// FocusDropdown routes keys to the lookback dropdown.
	FocusDropdown

	// FocusLogs routes keys to the log panel.
	FocusLogs
)

const (
	defaultDataInterval   = 5 * time.Second
	defaultHealthInterval = 10 * time.Second
	defaultLogLimit       = 50
)

// lookbackChoices are the windows offered by the History dropdown.
var lookbackChoices = []time.Duration{
	15 * time.Minute,
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
}

// Options configures a Model.
type Options struct {
	// Source provides histories, inventory, health, and logs. Required.
	Source Source

	// Board holds the interval snapshots and channel assignments.
	// Required; its options set the bucket width and initial lookback.
	Board *timeline.Board

	// TimeSource supplies the shared now. Required. The caller runs it.
	TimeSource *timeline.TimeSource

	// Clock stamps fetches and drives the status change glow.
	// Defaults to the real clock.
	Clock clock.Clock

	// Theme defaults to tui.DefaultTheme.
	Theme *tui.Theme

	// DataInterval is the history, inventory, and uptime poll cadence.
	DataInterval time.Duration

	// HealthInterval is the health check cadence.
	HealthInterval time.Duration

	// Containers restricts the list to these container IDs or names.
	// Empty shows every container.
	Containers []string

	// LogLimit caps the entries fetched for the log panel.
	LogLimit int

	Logger *slog.Logger
}

// healthState is the latest API health check outcome.
type healthState struct {
	Checked   bool
	Err       error
	CheckedAt time.Time
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx        context.Context
	source     Source
	board      *timeline.Board
	timeSource *timeline.TimeSource
	clock      clock.Clock
	logger     *slog.Logger
	theme      tui.Theme
	keys       KeyMap

	dataInterval   time.Duration
	healthInterval time.Duration
	logLimit       int
	only           map[string]bool

	width  int
	height int
	ready  bool

	// now is the shared now of the latest tick, zero before the first.
	now time.Time

	health   healthState
	lastData time.Time

	inventoryLoaded bool
	inventoryErr    error
	groups          []containerGroup
	rows            []listRow
	subjects        map[string]bool // Container subjects; the fleet is implicit.
	statuses        map[string]string
	uptime          map[string]float64
	uptimeErr       error

	series       map[string]timeline.Series
	seriesErrors map[string]error
	fetchErrors  map[string]error
	inFlight     map[string]bool

	cursor       int
	scrollOffset int

	// bucketSelected marks a bucket of the selected row for
	// inspection; bucketOffset counts back from the newest bucket.
	bucketSelected bool
	bucketOffset   int

	focusRegion FocusRegion
	filter      FilterModel
	dropdown    *tui.DropdownOverlay
	logPanel    *logPanel

	spinner     spinner.Model
	spinning    bool
	heat        *tui.HeatTracker
	heatTicking bool

	statusRecord     *logRecordMsg
	statusGeneration int
}

// NewModel creates a dashboard model. Fetches issued by the model use
// ctx, so cancelling it aborts requests in flight.
func NewModel(ctx context.Context, options Options) (Model, error) {
	if options.Source == nil {
		return Model{}, errors.New("dashboard: Source is required")
	}
	if options.Board == nil {
		return Model{}, errors.New("dashboard: Board is required")
	}
	if options.TimeSource == nil {
		return Model{}, errors.New("dashboard: TimeSource is required")
	}

	model := Model{
		ctx:            ctx,
		source:         options.Source,
		board:          options.Board,
		timeSource:     options.TimeSource,
		clock:          options.Clock,
		logger:         options.Logger,
		theme:          tui.DefaultTheme,
		keys:           DefaultKeyMap,
		dataInterval:   options.DataInterval,
		healthInterval: options.HealthInterval,
		logLimit:       options.LogLimit,
		subjects:       make(map[string]bool),
		statuses:       make(map[string]string),
		series:         make(map[string]timeline.Series),
		seriesErrors:   make(map[string]error),
		fetchErrors:    make(map[string]error),
		inFlight:       make(map[string]bool),
		heat:           tui.NewHeatTracker(),
		spinning:       true,
	}
	if options.Theme != nil {
		model.theme = *options.Theme
	}
	if model.clock == nil {
		model.clock = clock.Real()
	}
	if model.logger == nil {
		model.logger = slog.Default()
	}
	if model.dataInterval <= 0 {
		model.dataInterval = defaultDataInterval
	}
	if model.healthInterval <= 0 {
		model.healthInterval = defaultHealthInterval
	}
	if model.logLimit <= 0 {
		model.logLimit = defaultLogLimit
	}
	if len(options.Containers) > 0 {
		model.only = make(map[string]bool, len(options.Containers))
		for _, container := range options.Containers {
			model.only[container] = true
		}
	}

	model.spinner = spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(model.theme.AccentColor)),
	)
	model.now = model.timeSource.Now()
	model.relayout()
	return model, nil
}

// Init starts listening for ticks, fetches everything once, and
// schedules both polls.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		listenForTicks(model.timeSource.Ticks()),
		model.refreshData(),
		model.checkHealth(),
		model.scheduleDataPoll(),
		model.scheduleHealthPoll(),
		model.spinner.Tick,
	)
}

// Update handles one message.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focusRegion {
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusDropdown:
			return model.handleDropdownKeys(message)
		case FocusLogs:
			return model.handleLogPanelKeys(message)
		}
		return model.handleListKeys(message)

	case tea.MouseMsg:
		model.handleMouse(message)
		return model, nil

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.ensureCursorVisible()
		return model, nil

	case timeSourceTickMsg:
		model.now = message.Now
		model.recomputeAll()
		return model, listenForTicks(model.timeSource.Ticks())

	case intervalsMsg:
		model.applyIntervals(message)
		return model, nil

	case inventoryMsg:
		return model.applyInventory(message)

	case uptimeMsg:
		if message.Err != nil {
			if model.uptimeErr == nil {
				model.logger.Warn("cumulative uptime unavailable", "error", message.Err)
			}
			model.uptimeErr = message.Err
			return model, nil
		}
		model.uptimeErr = nil
		model.uptime = message.Uptime
		return model, nil

	case healthMsg:
		model.applyHealth(message)
		return model, nil

	case logsMsg:
		if model.logPanel != nil && model.logPanel.SubjectID == message.SubjectID {
			model.logPanel.loaded(message.Entries, message.Err)
		}
		return model, nil

	case dataPollMsg:
		return model, tea.Batch(model.refreshData(), model.scheduleDataPoll())

	case healthPollMsg:
		return model, tea.Batch(model.checkHealth(), model.scheduleHealthPoll())

	case heatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			return model, scheduleHeatTick()
		}
		model.heatTicking = false
		return model, nil

	case spinner.TickMsg:
		if !model.loading() {
			model.spinning = false
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command

	case logRecordMsg:
		record := message
		model.statusRecord = &record
		model.statusGeneration++
		generation := model.statusGeneration
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Generation: generation}
		})

	case logRecordFadeMsg:
		if message.Generation == model.statusGeneration {
			model.statusRecord = nil
		}
		return model, nil
	}

	return model, nil
}

// tracks reports whether subjectID is part of the current inventory.
// Results for subjects dropped while their fetch was in flight are
// discarded.
func (model Model) tracks(subjectID string) bool {
	return subjectID == timeline.FleetSubject || model.subjects[subjectID]
}

// applyIntervals installs a fetched snapshot. A failed fetch keeps
// the previous snapshot on the board; only the transition into and
// out of failure is logged.
func (model *Model) applyIntervals(message intervalsMsg) {
	delete(model.inFlight, message.SubjectID)
	if !model.tracks(message.SubjectID) {
		return
	}
	name := model.subjectName(message.SubjectID)

	if message.Err != nil {
		if model.fetchErrors[message.SubjectID] == nil {
			model.logger.Warn("uptime history fetch failed", "subject", name, "error", message.Err)
		}
		model.fetchErrors[message.SubjectID] = message.Err
		return
	}
	if model.fetchErrors[message.SubjectID] != nil {
		model.logger.Info("uptime history fetch recovered", "subject", name)
		delete(model.fetchErrors, message.SubjectID)
	}

	model.board.Replace(message.SubjectID, message.Intervals, message.FetchedAt)
	model.lastData = message.FetchedAt
	model.recompute(message.SubjectID)
}

// applyInventory regroups the list, glows containers whose status
// changed, fetches histories of new containers, and forgets those
// that disappeared.
func (model Model) applyInventory(message inventoryMsg) (tea.Model, tea.Cmd) {
	if message.Err != nil {
		if model.inventoryErr == nil {
			model.logger.Warn("container inventory fetch failed", "error", message.Err)
		}
		model.inventoryErr = message.Err
		return model, nil
	}
	model.inventoryErr = nil
	model.inventoryLoaded = true

	now := model.clock.Now()
	groups := groupContainers(message.Services, message.Orphans, model.only)
	current := make(map[string]bool)
	var commands []tea.Cmd
	for _, group := range groups {
		for _, container := range group.Containers {
			subjectID := container.Key()
			current[subjectID] = true
			if previous, known := model.statuses[subjectID]; known && previous != container.Status {
				model.heat.Ignite(subjectID, now)
			}
			model.statuses[subjectID] = container.Status
			if !model.subjects[subjectID] {
				commands = append(commands, model.fetchIntervals(subjectID))
			}
		}
	}
	for subjectID := range model.subjects {
		if current[subjectID] {
			continue
		}
		model.board.Forget(subjectID)
		delete(model.series, subjectID)
		delete(model.seriesErrors, subjectID)
		delete(model.fetchErrors, subjectID)
		delete(model.statuses, subjectID)
	}
	model.subjects = current
	model.groups = groups
	model.relayout()

	if !model.heatTicking && model.heat.HasHot(now) {
		model.heatTicking = true
		commands = append(commands, scheduleHeatTick())
	}
	if !model.spinning && model.loading() {
		model.spinning = true
		commands = append(commands, model.spinner.Tick)
	}
	return model, tea.Batch(commands...)
}

func (model *Model) applyHealth(message healthMsg) {
	wasOnline := model.health.Checked && model.health.Err == nil
	online := message.Err == nil
	switch {
	case model.health.Checked && wasOnline && !online:
		model.logger.Warn("backend API offline", "error", message.Err)
	case model.health.Checked && !wasOnline && online:
		model.logger.Info("backend API back online")
	case !model.health.Checked && !online:
		model.logger.Warn("backend API unreachable", "error", message.Err)
	}
	model.health = healthState{Checked: true, Err: message.Err, CheckedAt: message.CheckedAt}
}

// recompute re-renders one subject's series at the current now.
func (model *Model) recompute(subjectID string) {
	series, err := model.board.RenderSeries(subjectID, model.now)
	if err != nil {
		if model.seriesErrors[subjectID] == nil {
			model.logger.Warn("uptime history rejected",
				"subject", model.subjectName(subjectID), "error", err)
		}
		model.seriesErrors[subjectID] = err
		delete(model.series, subjectID)
		return
	}
	delete(model.seriesErrors, subjectID)
	model.series[subjectID] = series
}

// recomputeAll re-renders every loaded subject. Nothing is fetched.
func (model *Model) recomputeAll() {
	for _, subjectID := range model.board.Subjects() {
		model.recompute(subjectID)
	}
}

// loading reports whether anything shown is still waiting for its
// first data: the clock, the inventory, or a subject's history.
func (model Model) loading() bool {
	if model.now.IsZero() || !model.inventoryLoaded {
		return true
	}
	for _, row := range model.rows {
		if row.Kind == rowGroupHeader {
			continue
		}
		if _, loaded := model.board.Loaded(row.SubjectID); !loaded {
			return true
		}
	}
	return false
}

// subjectName returns the display name of a subject for logs and
// titles.
func (model Model) subjectName(subjectID string) string {
	if subjectID == timeline.FleetSubject {
		return "all containers"
	}
	for _, group := range model.groups {
		for _, container := range group.Containers {
			if container.Key() == subjectID {
				return container.Name
			}
		}
	}
	return subjectID
}

// relayout rebuilds the rows from the groups and filter, keeping the
// cursor on the same subject when it is still listed.
func (model *Model) relayout() {
	var selected *listRow
	if model.cursor < len(model.rows) {
		row := model.rows[model.cursor]
		selected = &row
	}

	model.rows = layoutRows(model.groups, &model.filter)
	model.cursor = 0
	if selected != nil {
		for index, row := range model.rows {
			if row.Kind == selected.Kind && row.SubjectID == selected.SubjectID &&
				(row.Kind != rowGroupHeader || row.Group.Name == selected.Group.Name) {
				model.cursor = index
				break
			}
		}
	}
	model.ensureCursorVisible()
}

func (model Model) selectedRow() (listRow, bool) {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return listRow{}, false
	}
	return model.rows[model.cursor], true
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	previousCursor := model.cursor

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.rows)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.PageUp):
		model.cursor = max(model.cursor-model.visibleHeight(), 0)

	case key.Matches(message, model.keys.PageDown):
		model.cursor = max(min(model.cursor+model.visibleHeight(), len(model.rows)-1), 0)

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		model.cursor = max(len(model.rows)-1, 0)

	case key.Matches(message, model.keys.EarlierBucket):
		model.moveBucket(1)

	case key.Matches(message, model.keys.LaterBucket):
		model.moveBucket(-1)

	case key.Matches(message, model.keys.FilterActivate):
		model.filter.Active = true
		model.focusRegion = FocusFilter
		model.ensureCursorVisible()

	case key.Matches(message, model.keys.FilterClear):
		if model.bucketSelected {
			model.bucketSelected = false
		} else if model.filter.Input != "" {
			model.filter.Clear()
			model.relayout()
		}

	case key.Matches(message, model.keys.History):
		model.openLookbackDropdown()

	case key.Matches(message, model.keys.Logs):
		return model, model.openLogPanel()

	case key.Matches(message, model.keys.Refresh):
		return model, tea.Batch(model.refreshData(), model.checkHealth())
	}

	if model.cursor != previousCursor {
		model.clampBucket()
	}
	model.ensureCursorVisible()
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.relayout()
		}
		model.filter.Active = false
		model.focusRegion = FocusList
		model.ensureCursorVisible()

	case message.Type == tea.KeyEnter:
		model.filter.Active = false
		model.focusRegion = FocusList
		model.ensureCursorVisible()

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.relayout()
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.relayout()
	}
	return model, nil
}

func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.dropdown == nil {
		model.focusRegion = FocusList
		return model, nil
	}

	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.Quit), key.Matches(message, model.keys.FilterClear):
		model.dismissDropdown()

	case key.Matches(message, model.keys.Up):
		model.dropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.dropdown.MoveDown()

	case message.Type == tea.KeyEnter:
		selected := model.dropdown.Selected()
		model.dismissDropdown()
		model.applyLookback(selected.Value)
	}
	return model, nil
}

func (model Model) handleLogPanelKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.logPanel == nil {
		model.focusRegion = FocusList
		return model, nil
	}

	bodyHeight := logPanelBodyHeight(model.height)
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.Quit),
		key.Matches(message, model.keys.FilterClear),
		key.Matches(message, model.keys.Logs):
		model.logPanel = nil
		model.focusRegion = FocusList

	case key.Matches(message, model.keys.Up):
		model.logPanel.scroll(-1, bodyHeight)

	case key.Matches(message, model.keys.Down):
		model.logPanel.scroll(1, bodyHeight)

	case key.Matches(message, model.keys.PageUp):
		model.logPanel.scroll(-bodyHeight, bodyHeight)

	case key.Matches(message, model.keys.PageDown):
		model.logPanel.scroll(bodyHeight, bodyHeight)

	case key.Matches(message, model.keys.Refresh):
		model.logPanel.Loading = true
		return model, model.fetchLogs(model.logPanel.SubjectID)
	}
	return model, nil
}

// handleMouse scrolls the list with the wheel and selects rows on
// click.
func (model *Model) handleMouse(message tea.MouseMsg) {
	if model.focusRegion != FocusList {
		return
	}
	switch {
	case message.Button == tea.MouseButtonWheelUp:
		model.scrollOffset = max(model.scrollOffset-3, 0)
	case message.Button == tea.MouseButtonWheelDown:
		model.scrollOffset = max(min(model.scrollOffset+3, len(model.rows)-model.visibleHeight()), 0)
	case message.Button == tea.MouseButtonLeft && message.Action == tea.MouseActionPress:
		index := model.scrollOffset + message.Y - model.contentStartY()
		if message.Y >= model.contentStartY() && index >= 0 && index < len(model.rows) &&
			message.Y < model.contentStartY()+model.visibleHeight() {
			if index != model.cursor {
				model.cursor = index
				model.clampBucket()
			}
		}
	}
}

// moveBucket shifts the inspected bucket of the selected row by delta
// toward older buckets. Moving newer past the newest bucket ends the
// inspection.
func (model *Model) moveBucket(delta int) {
	row, ok := model.selectedRow()
	if !ok || row.Kind == rowGroupHeader {
		return
	}
	shown := model.shownBuckets(row.SubjectID)
	if shown == 0 {
		return
	}
	if !model.bucketSelected {
		if delta > 0 {
			model.bucketSelected = true
			model.bucketOffset = 0
		}
		return
	}
	offset := model.bucketOffset + delta
	if offset < 0 {
		model.bucketSelected = false
		return
	}
	model.bucketOffset = min(offset, shown-1)
}

// clampBucket keeps the inspected bucket within the newly selected
// row's bar.
func (model *Model) clampBucket() {
	if !model.bucketSelected {
		return
	}
	row, ok := model.selectedRow()
	if !ok || row.Kind == rowGroupHeader {
		return
	}
	if shown := model.shownBuckets(row.SubjectID); shown > 0 {
		model.bucketOffset = min(model.bucketOffset, shown-1)
	}
}

// shownBuckets is the number of a subject's buckets visible in its
// bar.
func (model Model) shownBuckets(subjectID string) int {
	series := model.series[subjectID]
	return len(series.Rows) - tui.HeartbeatWindow(series, model.barWidth())
}

// selectedBucket returns the index into the subject's series rows of
// the inspected bucket, or -1.
func (model Model) selectedBucket(subjectID string) int {
	if !model.bucketSelected {
		return -1
	}
	row, ok := model.selectedRow()
	if !ok || row.SubjectID != subjectID || row.Kind == rowGroupHeader {
		return -1
	}
	series := model.series[subjectID]
	index := len(series.Rows) - 1 - model.bucketOffset
	if index < 0 {
		return -1
	}
	return index
}

func (model *Model) openLookbackDropdown() {
	current := model.board.Options().Lookback
	options := make([]tui.DropdownOption, len(lookbackChoices))
	for index, choice := range lookbackChoices {
		options[index] = tui.DropdownOption{Label: formatWindow(choice), Value: choice.String()}
	}
	model.dropdown = tui.NewDropdown("Window", options, current.String())
	model.dropdown.AnchorX = max(model.width-model.dropdown.Width()-2, 0)
	model.dropdown.AnchorY = 1
	model.focusRegion = FocusDropdown
}

func (model *Model) dismissDropdown() {
	model.dropdown = nil
	model.focusRegion = FocusList
}

// applyLookback widens or narrows the window and re-renders every
// subject from the snapshots already held.
func (model *Model) applyLookback(value string) {
	lookback, err := time.ParseDuration(value)
	if err != nil {
		return
	}
	options := model.board.Options()
	options.Lookback = lookback
	if err := model.board.SetOptions(options); err != nil {
		model.logger.Warn("changing the window failed", "error", err)
		return
	}
	model.recomputeAll()
	model.clampBucket()
}

func (model *Model) openLogPanel() tea.Cmd {
	row, ok := model.selectedRow()
	if !ok || row.Kind == rowGroupHeader {
		return nil
	}
	model.logPanel = &logPanel{
		SubjectID: row.SubjectID,
		Title:     "Logs: " + model.subjectName(row.SubjectID),
		Loading:   true,
	}
	model.focusRegion = FocusLogs
	return model.fetchLogs(row.SubjectID)
}

// contentStartY is the screen row of the first list row.
func (model Model) contentStartY() int {
	if model.filter.Visible() {
		return 2
	}
	return 1
}

// visibleHeight is the number of list rows on screen: everything but
// the header, the filter bar, and the four footer lines.
func (model Model) visibleHeight() int {
	return max(model.height-model.contentStartY()-4, 1)
}

// ensureCursorVisible adjusts scrollOffset so the cursor is on
// screen.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	maxOffset := max(len(model.rows)-visible, 0)
	model.scrollOffset = min(model.scrollOffset, maxOffset)
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}
