package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"

	"github.com/tgienger/tdm/internal/models"
	"github.com/tgienger/tdm/internal/store"
	"github.com/tgienger/tdm/internal/ui/keys"
	"github.com/tgienger/tdm/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusStatusFilter FocusArea = iota
	FocusPriorityFilter
	FocusCategoryFilter
	FocusTaskList
)

// SwitchToText signals that the collection should be handed to the
// text front end.
type SwitchToText struct{}

// TaskListView is the main windowed screen: the task table with its
// three filter selectors, plus the modal form and confirm dialogs.
type TaskListView struct {
	store  *store.Store
	log    *log.Logger
	styles *styles.Styles
	keys   keys.KeyMap

	tasks   []models.Task // full collection, saved after every change
	visible []models.Task // filtered snapshot shown in the table
	filter  models.Filter

	width  int
	height int

	// UI state
	focus   FocusArea
	cursor  int
	scrollY int

	// Filter dropdown state
	dropdownOpen bool
	dropdownIdx  int

	// Task creation/editing
	editing         bool
	editingNew      bool
	editTaskID      int
	editTitle       textinput.Model
	editDesc        textarea.Model
	editDue         textinput.Model
	editCategories  []string
	editCategoryIdx int
	editPriorities  []string
	editPriorityIdx int
	editFocusIdx    int // 0=title, 1=desc, 2=category, 3=priority, 4=due, 5=save, 6=cancel
	formError       string

	// Confirm dialogs
	confirmingDelete  bool
	confirmingStatus  bool
	confirmingClear   bool
	confirmTargetID   int
	confirmTargetName string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool

	// Transient status line under the table
	statusMsg   string
	statusIsErr bool
}

// NewTaskListView creates the task list view over an already loaded
// collection. A non-empty notice is shown on the status line until
// the next action replaces it.
func NewTaskListView(st *store.Store, logger *log.Logger, tasks []models.Task, notice string) *TaskListView {
	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = "YYYY-MM-DD"
	editDue.CharLimit = 10

	v := &TaskListView{
		store:     st,
		log:       logger,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		tasks:     tasks,
		filter:    models.Filter{Mode: models.FilterAll},
		focus:     FocusTaskList,
		editTitle: editTitle,
		editDesc:  editDesc,
		editDue:   editDue,
	}
	if notice != "" {
		v.statusMsg = notice
		v.statusIsErr = true
	}
	v.applyFilters()
	return v
}

// Tasks returns the current collection, e.g. for handing it to the
// text front end after SwitchToText.
func (v *TaskListView) Tasks() []models.Task {
	return v.tasks
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		// Update textarea width dynamically based on content width
		contentWidth := styles.ContentWidth(v.width)
		v.editDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		v.ensureVisible()
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.confirmingStatus {
			return v.updateConfirmStatus(msg)
		}

		if v.confirmingClear {
			return v.updateConfirmClear(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		if v.dropdownOpen {
			return v.updateDropdown(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		v.statusMsg = ""
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.cycleFocus(1)
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.cycleFocus(-1)
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.focus == FocusTaskList && v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.focus == FocusTaskList && v.cursor < len(v.visible)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Left):
		if v.focus != FocusTaskList {
			v.cycleFilterValue(-1)
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.focus != FocusTaskList {
			v.cycleFilterValue(1)
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.focus {
		case FocusStatusFilter, FocusPriorityFilter, FocusCategoryFilter:
			v.openDropdown()
		case FocusTaskList:
			if task, ok := v.selectedTask(); ok {
				v.startEditTask(task)
				return v, textinput.Blink
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		task, ok := v.selectedTask()
		if !ok {
			v.setStatus("No task selected.", false)
			return v, nil
		}
		v.startEditTask(task)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		task, ok := v.selectedTask()
		if !ok {
			v.setStatus("No task selected.", false)
			return v, nil
		}
		v.confirmingDelete = true
		v.confirmTargetID = task.ID
		v.confirmTargetName = task.Title
		return v, nil

	case key.Matches(msg, v.keys.Status):
		task, ok := v.selectedTask()
		if !ok {
			v.setStatus("No task selected.", false)
			return v, nil
		}
		v.confirmingStatus = true
		v.confirmTargetID = task.ID
		v.confirmTargetName = task.Title
		return v, nil

	case key.Matches(msg, v.keys.ClearAll):
		if len(v.tasks) == 0 {
			v.setStatus("There are no tasks to clear.", false)
			return v, nil
		}
		v.confirmingClear = true
		return v, nil

	case key.Matches(msg, v.keys.SwitchText):
		return v, func() tea.Msg { return SwitchToText{} }

	case msg.String() == "?":
		// Show help popup (useful at narrow widths)
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.dropdownOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.dropdownIdx > 0 {
			v.dropdownIdx--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.dropdownIdx < len(v.filterOptions(v.focus))-1 {
			v.dropdownIdx++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		opts := v.filterOptions(v.focus)
		if v.dropdownIdx < len(opts) {
			v.setFilterValue(v.focus, opts[v.dropdownIdx])
		}
		v.dropdownOpen = false
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		v.deleteTask(v.confirmTargetID)
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TaskListView) updateConfirmStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingStatus = false
		v.setCompleted(v.confirmTargetID, true)
	case "n", "N":
		v.confirmingStatus = false
		v.setCompleted(v.confirmTargetID, false)
	case "esc":
		v.confirmingStatus = false
	}
	return v, nil
}

func (v *TaskListView) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingClear = false
		v.tasks = nil
		v.setStatus("All tasks have been removed.", false)
		v.persist()
		v.applyFilters()
	case "n", "N", "esc":
		v.confirmingClear = false
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.saveTask()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 7
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.editFocusIdx = (v.editFocusIdx + 6) % 7
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.editFocusIdx {
		case 1:
			// Let enter pass through for newlines in the description
		case 5:
			v.saveTask()
			return v, nil
		case 6:
			v.editing = false
			return v, nil
		default:
			// Enter on any other field moves to the next one
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		}

	case key.Matches(msg, v.keys.Left):
		switch v.editFocusIdx {
		case 2:
			v.editCategoryIdx = (v.editCategoryIdx + len(v.editCategories) - 1) % len(v.editCategories)
			return v, nil
		case 3:
			v.editPriorityIdx = (v.editPriorityIdx + len(v.editPriorities) - 1) % len(v.editPriorities)
			return v, nil
		}

	case key.Matches(msg, v.keys.Right):
		switch v.editFocusIdx {
		case 2:
			v.editCategoryIdx = (v.editCategoryIdx + 1) % len(v.editCategories)
			return v, nil
		case 3:
			v.editPriorityIdx = (v.editPriorityIdx + 1) % len(v.editPriorities)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case 4:
		v.editDue, cmd = v.editDue.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) cycleFocus(dir int) {
	v.focus = FocusArea((int(v.focus) + dir + 4) % 4)
}

func (v *TaskListView) ensureVisible() {
	visibleRows := v.tableHeight()

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleRows {
		v.scrollY = v.cursor - visibleRows + 1
	}
}

// tableHeight returns how many task rows fit between the header and
// the help line.
func (v *TaskListView) tableHeight() int {
	available := v.height - 12
	if available < 3 {
		available = 3
	}
	return available
}

func (v *TaskListView) selectedTask() (models.Task, bool) {
	if len(v.visible) == 0 || v.cursor >= len(v.visible) {
		return models.Task{}, false
	}
	return v.visible[v.cursor], true
}

func (v *TaskListView) setStatus(msg string, isErr bool) {
	v.statusMsg = msg
	v.statusIsErr = isErr
}

// applyFilters recomputes the visible slice from the full collection
// and keeps the cursor inside it.
func (v *TaskListView) applyFilters() {
	v.visible = v.filter.Apply(v.tasks)
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
	v.ensureVisible()
}

// persist writes the collection through the store. Failure keeps the
// in-memory collection intact and surfaces on the status line.
func (v *TaskListView) persist() {
	if err := v.store.Save(v.tasks); err != nil {
		v.log.Error("save failed", "file", v.store.Path(), "err", err)
		v.setStatus(fmt.Sprintf("Error saving tasks: %v", err), true)
	}
}

func (v *TaskListView) deleteTask(id int) {
	for i, task := range v.tasks {
		if task.ID == id {
			v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)
			v.setStatus(fmt.Sprintf("Task '%s' deleted.", task.Title), false)
			break
		}
	}
	v.persist()
	v.applyFilters()
}

func (v *TaskListView) setCompleted(id int, done bool) {
	for i := range v.tasks {
		if v.tasks[i].ID == id {
			v.tasks[i].Completed = done
			label := "pending"
			if done {
				label = "completed"
			}
			v.setStatus(fmt.Sprintf("Task '%s' marked as %s.", v.tasks[i].Title, label), false)
			break
		}
	}
	v.persist()
	v.applyFilters()
}

// filterOptions returns the selectable values for one of the three
// filter selectors.
func (v *TaskListView) filterOptions(area FocusArea) []string {
	switch area {
	case FocusStatusFilter:
		opts := make([]string, len(models.FilterModes))
		for i, mode := range models.FilterModes {
			opts[i] = string(mode)
		}
		return opts
	case FocusPriorityFilter:
		return append([]string{"all"}, models.PriorityLevels...)
	case FocusCategoryFilter:
		return v.categoryOptions()
	}
	return nil
}

// categoryOptions is "all", the stock categories, and any extra
// category already present in the data.
func (v *TaskListView) categoryOptions() []string {
	opts := append([]string{"all"}, models.CategoryOptions...)
	seen := make(map[string]bool, len(opts))
	for _, opt := range opts {
		seen[strings.ToLower(opt)] = true
	}

	var extras []string
	for _, task := range v.tasks {
		c := strings.TrimSpace(task.Category)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		extras = append(extras, c)
	}
	sort.Strings(extras)

	return append(opts, extras...)
}

func (v *TaskListView) currentFilterValue(area FocusArea) string {
	switch area {
	case FocusStatusFilter:
		return string(v.filter.Mode)
	case FocusPriorityFilter:
		if v.filter.Priority == "" {
			return "all"
		}
		return v.filter.Priority
	case FocusCategoryFilter:
		if v.filter.Category == "" {
			return "all"
		}
		return v.filter.Category
	}
	return ""
}

func (v *TaskListView) setFilterValue(area FocusArea, val string) {
	switch area {
	case FocusStatusFilter:
		v.filter.Mode = models.FilterMode(val)
	case FocusPriorityFilter:
		if val == "all" {
			val = ""
		}
		v.filter.Priority = val
	case FocusCategoryFilter:
		if val == "all" {
			val = ""
		}
		v.filter.Category = val
	}
	v.cursor = 0
	v.scrollY = 0
	v.applyFilters()
}

func (v *TaskListView) cycleFilterValue(dir int) {
	opts := v.filterOptions(v.focus)
	if len(opts) == 0 {
		return
	}
	idx := 0
	current := v.currentFilterValue(v.focus)
	for i, opt := range opts {
		if strings.EqualFold(opt, current) {
			idx = i
			break
		}
	}
	v.setFilterValue(v.focus, opts[(idx+dir+len(opts))%len(opts)])
}

func (v *TaskListView) openDropdown() {
	v.dropdownIdx = 0
	current := v.currentFilterValue(v.focus)
	for i, opt := range v.filterOptions(v.focus) {
		if strings.EqualFold(opt, current) {
			v.dropdownIdx = i
			break
		}
	}
	v.dropdownOpen = true
}

// formOptions copies the stock values and appends the current one if
// it is not already listed, so edits never lose a value that came in
// from the file.
func formOptions(base []string, current string) []string {
	opts := append([]string(nil), base...)
	c := strings.TrimSpace(current)
	if c == "" {
		return opts
	}
	for _, opt := range opts {
		if strings.EqualFold(opt, c) {
			return opts
		}
	}
	return append(opts, c)
}

func optionIndex(opts []string, val string) int {
	for i, opt := range opts {
		if strings.EqualFold(opt, val) {
			return i
		}
	}
	return 0
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editTaskID = 0
	v.editFocusIdx = 0
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editCategories = formOptions(models.CategoryOptions, "")
	v.editCategoryIdx = optionIndex(v.editCategories, models.DefaultCategory)
	v.editPriorities = formOptions(models.PriorityLevels, "")
	v.editPriorityIdx = optionIndex(v.editPriorities, models.DefaultPriority)
	v.formError = ""
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editTaskID = task.ID
	v.editFocusIdx = 0
	v.editTitle.SetValue(task.Title)
	v.editDesc.SetValue(task.Description)
	v.editDue.SetValue(task.DueDate)
	v.editCategories = formOptions(models.CategoryOptions, task.Category)
	v.editCategoryIdx = optionIndex(v.editCategories, task.Category)
	v.editPriorities = formOptions(models.PriorityLevels, task.Priority)
	v.editPriorityIdx = optionIndex(v.editPriorities, task.Priority)
	v.formError = ""
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	case 4:
		v.editDue.Focus()
	}
}

// saveTask validates the form and commits it. Validation failure
// keeps the form open with the message shown under the buttons.
func (v *TaskListView) saveTask() {
	title := strings.TrimSpace(v.editTitle.Value())
	if err := models.ValidateTitle(title); err != nil {
		v.formError = "Title is required."
		return
	}
	due, err := models.ParseDueDate(v.editDue.Value())
	if err != nil {
		v.formError = "Invalid date. Use YYYY-MM-DD."
		return
	}

	desc := strings.TrimSpace(v.editDesc.Value())
	category := v.editCategories[v.editCategoryIdx]
	priority := v.editPriorities[v.editPriorityIdx]

	if v.editingNew {
		task := models.NewTask(v.store.NextID(v.tasks), title, desc, category, priority)
		task.DueDate = due
		v.tasks = append(v.tasks, task)
		v.setStatus(fmt.Sprintf("Task '%s' added successfully.", task.Title), false)
	} else {
		for i := range v.tasks {
			if v.tasks[i].ID == v.editTaskID {
				v.tasks[i].Title = title
				v.tasks[i].Description = desc
				v.tasks[i].Category = category
				v.tasks[i].Priority = models.NormalizePriority(priority)
				v.tasks[i].DueDate = due
				v.setStatus(fmt.Sprintf("Task '%s' updated successfully.", title), false)
				break
			}
		}
	}

	v.editing = false
	v.formError = ""
	v.persist()
	v.applyFilters()
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.confirmingStatus {
		return v.renderStatusConfirm()
	}

	if v.confirmingClear {
		return v.renderClearConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(v.renderTable())
	b.WriteString("\n")

	if line := v.renderStatusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	isNarrow := contentWidth < 60

	title := s.Title.Render("To-Do Manager")
	sum := models.Summarize(v.tasks)
	counts := s.TitleMuted.Render(fmt.Sprintf("Total %d | Completed %d | Pending %d | Due soon %d",
		sum.Total, sum.Completed, sum.Pending, sum.DueSoon))

	statusBtn := v.renderFilterButton(FocusStatusFilter, "Status", isNarrow)
	priorityBtn := v.renderFilterButton(FocusPriorityFilter, "Priority", isNarrow)
	categoryBtn := v.renderFilterButton(FocusCategoryFilter, "Category", isNarrow)

	var bar string
	if isNarrow {
		bar = lipgloss.JoinVertical(lipgloss.Left, statusBtn, priorityBtn, categoryBtn)
	} else {
		bar = lipgloss.JoinHorizontal(lipgloss.Center, statusBtn, " ", priorityBtn, " ", categoryBtn)
	}

	// Dropdown for the focused selector, if open
	dropdown := ""
	if v.dropdownOpen {
		dropdown = "\n" + v.renderDropdown()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, counts, "", bar+dropdown)
}

func (v *TaskListView) renderFilterButton(area FocusArea, label string, isNarrow bool) string {
	s := v.styles
	style := s.Button
	if v.focus == area {
		style = s.ButtonFocused
	}
	text := v.currentFilterValue(area)
	if !isNarrow {
		text = label + ": " + text
	}
	return style.Render(text + " ▼")
}

func (v *TaskListView) renderDropdown() string {
	s := v.styles
	opts := v.filterOptions(v.focus)
	current := v.currentFilterValue(v.focus)

	var items []string
	for i, opt := range opts {
		style := s.DropdownItem
		if i == v.dropdownIdx {
			style = s.DropdownSelected
		}
		marker := "  "
		if strings.EqualFold(opt, current) {
			marker = "• "
		}
		items = append(items, style.Render(marker+opt))
	}

	return s.Dropdown.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

// tableWidths holds per-column widths for the task table.
type tableWidths struct {
	id, title, desc, category, priority, status int
}

func newTableWidths(contentWidth int) tableWidths {
	w := tableWidths{id: 4, category: 10, priority: 8, status: 8}
	remaining := contentWidth - w.id - w.category - w.priority - w.status - 5
	w.title = clamp(remaining*2/5, 8, 30)
	w.desc = max(remaining-w.title, 8)
	return w
}

// cell truncates text to the column width and pads it back out.
func cell(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(truncate.StringWithTail(text, uint(width), "…"))
}

func (v *TaskListView) renderTable() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'a' to add one.")
	}
	if len(v.visible) == 0 {
		return s.TitleMuted.Render("No tasks match the current filters.")
	}

	contentWidth := styles.ContentWidth(v.width)
	isNarrow := contentWidth < 60
	w := newTableWidths(contentWidth)

	var headCells []string
	if isNarrow {
		headCells = []string{cell("ID", w.id), cell("Title", w.title), cell("Status", w.status)}
	} else {
		headCells = []string{
			cell("ID", w.id),
			cell("Title", w.title),
			cell("Description", w.desc),
			cell("Category", w.category),
			cell("Priority", w.priority),
			cell("Status", w.status),
		}
	}
	rows := []string{s.TableHeader.Render(strings.Join(headCells, " "))}

	endIdx := min(v.scrollY+v.tableHeight(), len(v.visible))
	for i := v.scrollY; i < endIdx; i++ {
		selected := i == v.cursor && v.focus == FocusTaskList
		rows = append(rows, v.renderRow(v.visible[i], selected, w, isNarrow))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TaskListView) renderRow(task models.Task, selected bool, w tableWidths, isNarrow bool) string {
	s := v.styles

	id := cell(strconv.Itoa(task.ID), w.id)
	title := cell(task.Title, w.title)
	status := cell(task.StatusLabel(), w.status)

	var cells []string
	if isNarrow {
		cells = []string{id, title, status}
	} else {
		desc := cell(strings.ReplaceAll(task.Description, "\n", " "), w.desc)
		category := cell(task.Category, w.category)
		priority := cell(task.Priority, w.priority)
		if !selected && !task.Completed {
			priority = s.Priority(task.Priority).Render(priority)
		}
		cells = []string{id, title, desc, category, priority, status}
	}
	row := strings.Join(cells, " ")

	switch {
	case selected:
		return s.RowSelected.Render(row)
	case task.Completed:
		return s.RowDone.Render(row)
	default:
		return s.Row.Render(row)
	}
}

func (v *TaskListView) renderStatusLine() string {
	if v.statusMsg == "" {
		return ""
	}
	s := v.styles.StatusBar
	if v.statusIsErr {
		s = v.styles.StatusError
	}
	contentWidth := styles.ContentWidth(v.width)
	return s.Render(truncate.StringWithTail(v.statusMsg, uint(max(contentWidth-2, 20)), "…"))
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	descStyle := s.Input
	categoryStyle := s.Input
	priorityStyle := s.Input
	dueStyle := s.Input
	saveStyle := s.Button
	cancelStyle := s.Button

	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		categoryStyle = s.InputFocused
	case 3:
		priorityStyle = s.InputFocused
	case 4:
		dueStyle = s.InputFocused
	case 5:
		saveStyle = s.ButtonFocused
	case 6:
		cancelStyle = s.ButtonFocused
	}

	// Dynamic input width based on content width
	inputWidth := clamp(contentWidth-6, 20, 50)

	category := categoryStyle.Width(inputWidth).Render("◀ " + v.editCategories[v.editCategoryIdx] + " ▶")
	priority := priorityStyle.Width(inputWidth).Render("◀ " + v.editPriorities[v.editPriorityIdx] + " ▶")

	errorLine := ""
	if v.formError != "" {
		errorLine = s.FormError.Render(v.formError)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.editDesc.View()),
		"",
		"Category:",
		category,
		"",
		"Priority:",
		priority,
		"",
		"Due date (YYYY-MM-DD):",
		dueStyle.Width(inputWidth).Render(v.editDue.View()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			saveStyle.Render(" Save "),
			"  ",
			cancelStyle.Render(" Cancel "),
		),
		errorLine,
		s.TitleMuted.Render("Tab: next • ←→: change option • Ctrl+S: save • Esc: cancel"),
	)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s add • %s edit • %s del • %s status • %s clear • %s text mode • %s filters • %s quit",
			v.styles.HelpKey.Render("a"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("C"),
			v.styles.HelpKey.Render("t"),
			v.styles.HelpKey.Render("tab"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("tab") + "    cycle focus",
		s.HelpKey.Render("↵") + "      open filter / edit task",
		s.HelpKey.Render("a") + "      add task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("space") + "  update status",
		s.HelpKey.Render("C") + "      clear all tasks",
		s.HelpKey.Render("t") + "      switch to text mode",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Delete '%s'?", v.confirmTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderStatusConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	question := fmt.Sprintf("Mark '%s' as completed? Selecting 'No' will mark it as pending.", v.confirmTargetName)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Warning).Render("Update Status"),
		"",
		s.TitleMuted.Width(clamp(contentWidth-10, 20, 60)).Render(question),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
		"",
		s.TitleMuted.Render("Esc leaves the task unchanged"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderClearConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Clear All Tasks?"),
		"",
		s.TitleMuted.Render("This will permanently delete all tasks. Continue?"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
