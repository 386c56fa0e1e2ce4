// Package tui provides a terminal tag browser for diagnosing a connected
// Logix controller: a tree of controller- and program-scoped tags, a
// live-value pane, and an ad-hoc write dialog.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dhunt84971/cslogix/logix"
)

// ClientLookup resolves a configured PLC name to its connected client.
type ClientLookup func(name string) *logix.Client

// App is the tag browser application.
type App struct {
	app        *tview.Application
	plcNames   []string
	getClient  ClientLookup

	pages     *tview.Pages
	flex      *tview.Flex
	plcSelect *tview.DropDown
	filter    *tview.InputField
	tree      *tview.TreeView
	treeRoot  *tview.TreeNode
	details   *tview.TextView
	status    *tview.TextView

	selectedPLC string
	allTags     []logix.TagInfo
	filterText  string
}

// NewApp creates the tag browser over the given set of configured PLC names.
// getClient is consulted each time a PLC is selected or a tag is read/written.
func NewApp(plcNames []string, getClient ClientLookup) *App {
	a := &App{
		app:       tview.NewApplication(),
		plcNames:  plcNames,
		getClient: getClient,
	}
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	a.plcSelect = tview.NewDropDown().SetLabel("PLC: ").SetFieldWidth(24)
	sort.Strings(a.plcNames)
	a.plcSelect.SetOptions(a.plcNames, func(text string, _ int) {
		a.selectedPLC = text
		a.loadTags()
	})
	if len(a.plcNames) > 0 {
		a.plcSelect.SetCurrentOption(0)
		a.selectedPLC = a.plcNames[0]
	}

	a.filter = tview.NewInputField().SetLabel("Filter: ").SetFieldWidth(30)
	a.filter.SetChangedFunc(func(text string) {
		a.filterText = strings.ToLower(text)
		a.rebuildTree()
	})
	a.filter.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyEnter {
			a.app.SetFocus(a.tree)
			return nil
		}
		return event
	})

	header := tview.NewFlex().
		AddItem(a.plcSelect, 32, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(a.filter, 42, 0, false).
		AddItem(nil, 0, 1, false)

	a.treeRoot = tview.NewTreeNode("Tags").SetColor(tcell.ColorYellow)
	a.tree = tview.NewTreeView().SetRoot(a.treeRoot).SetCurrentNode(a.treeRoot)
	a.tree.SetSelectedFunc(a.onNodeSelected)
	a.tree.SetInputCapture(a.handleTreeKeys)
	a.tree.SetBorder(true).SetTitle(" Tags ")

	a.details = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	a.details.SetBorder(true).SetTitle(" Value ")
	a.details.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyTab {
			a.app.SetFocus(a.tree)
			return nil
		}
		return event
	})

	content := tview.NewFlex().
		AddItem(a.tree, 0, 1, true).
		AddItem(a.details, 50, 0, false)

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetText(" /:filter  enter:read/expand  w:write  r:reload  tab:value pane  q:quit")

	a.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(content, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages = tview.NewPages().AddPage("main", a.flex, true, true)
}

func (a *App) handleTreeKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		a.app.SetFocus(a.details)
		return nil
	}
	switch event.Rune() {
	case '/':
		a.app.SetFocus(a.filter)
		return nil
	case 'r':
		a.loadTags()
		return nil
	case 'w':
		if node := a.tree.GetCurrentNode(); node != nil {
			a.showWriteDialog(node)
		}
		return nil
	case 'q':
		a.app.Stop()
		return nil
	}
	return event
}

// Run starts the terminal UI and blocks until the user quits.
func (a *App) Run() error {
	a.loadTags()
	return a.app.SetRoot(a.pages, true).SetFocus(a.tree).Run()
}

func (a *App) client() *logix.Client {
	if a.selectedPLC == "" || a.getClient == nil {
		return nil
	}
	return a.getClient(a.selectedPLC)
}

func (a *App) loadTags() {
	a.treeRoot.ClearChildren()
	a.allTags = nil

	client := a.client()
	if client == nil {
		a.setStatus("PLC not connected")
		return
	}

	tags, err := client.GetTagList(true)
	if err != nil {
		a.setStatus(fmt.Sprintf("Failed to list tags: %v", err))
		return
	}
	a.allTags = tags
	a.rebuildTree()
}

// rebuildTree re-renders the tree from a.allTags, applying the current
// filter and grouping program-scoped tags under their owning program.
func (a *App) rebuildTree() {
	a.treeRoot.ClearChildren()

	programNodes := make(map[string]*tview.TreeNode)
	var controllerNode *tview.TreeNode

	sorted := make([]logix.TagInfo, len(a.allTags))
	copy(sorted, a.allTags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, tag := range sorted {
		if tag.IsProgram() {
			continue
		}
		if !a.matchesFilter(tag.Name) {
			continue
		}

		node := a.newTagNode(tag)

		if strings.HasPrefix(tag.Name, "Program:") {
			parts := strings.SplitN(strings.TrimPrefix(tag.Name, "Program:"), ".", 2)
			progName := parts[0]
			pn, ok := programNodes[progName]
			if !ok {
				pn = tview.NewTreeNode("Program:" + progName).SetColor(tcell.ColorBlue).SetExpanded(false)
				programNodes[progName] = pn
				a.treeRoot.AddChild(pn)
			}
			pn.AddChild(node)
		} else {
			if controllerNode == nil {
				controllerNode = tview.NewTreeNode("Controller Tags").SetColor(tcell.ColorBlue).SetExpanded(true)
				a.treeRoot.AddChild(controllerNode)
			}
			controllerNode.AddChild(node)
		}
	}

	a.setStatus(fmt.Sprintf("%d tags", len(sorted)))
}

func (a *App) matchesFilter(name string) bool {
	if a.filterText == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), a.filterText)
}

func (a *App) newTagNode(tag logix.TagInfo) *tview.TreeNode {
	typeName := logix.TypeName(tag.TypeCode)
	shortName := tag.Name
	if idx := strings.LastIndex(tag.Name, "."); idx >= 0 {
		shortName = tag.Name[idx+1:]
	}
	text := fmt.Sprintf("%s  [gray]%s[-]", shortName, typeName)
	node := tview.NewTreeNode(text).SetReference(tag)
	return node
}

func (a *App) onNodeSelected(node *tview.TreeNode) {
	ref := node.GetReference()
	if ref == nil {
		node.SetExpanded(!node.IsExpanded())
		return
	}
	tag, ok := ref.(logix.TagInfo)
	if !ok {
		return
	}
	a.showTagValue(tag)
}

func (a *App) showTagValue(tag logix.TagInfo) {
	client := a.client()
	if client == nil {
		a.details.SetText("PLC not connected")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tag.Name))
	sb.WriteString(fmt.Sprintf("Type: %s (0x%04X)\n", logix.TypeName(tag.TypeCode), tag.TypeCode))
	if len(tag.Dimensions) > 0 {
		dims := make([]string, len(tag.Dimensions))
		for i, d := range tag.Dimensions {
			dims[i] = strconv.Itoa(d)
		}
		sb.WriteString("Dimensions: [" + strings.Join(dims, ",") + "]\n")
	}
	sb.WriteString("\n")

	values, err := client.Read(tag.Name)
	if err != nil {
		sb.WriteString(fmt.Sprintf("[red]Read error: %v[-]", err))
		a.details.SetText(sb.String())
		return
	}
	if len(values) != 1 {
		sb.WriteString("[red]Unexpected read result[-]")
		a.details.SetText(sb.String())
		return
	}

	v := values[0]
	if v.Error != nil {
		sb.WriteString(fmt.Sprintf("[red]%v[-]", v.Error))
		a.details.SetText(sb.String())
		return
	}

	if v.IsStructureType() {
		members, err := client.DecodeUDT(v.DataType, v.Bytes)
		if err != nil {
			sb.WriteString(fmt.Sprintf("[red]UDT decode error: %v[-]", err))
		} else {
			names := make([]string, 0, len(members))
			for name := range members {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				sb.WriteString(fmt.Sprintf("%s: %v\n", name, members[name]))
			}
		}
	} else {
		sb.WriteString(fmt.Sprintf("Value: %v\n", v.GoValueDecoded(client)))
	}

	a.details.SetText(sb.String())
}

func (a *App) showWriteDialog(node *tview.TreeNode) {
	ref := node.GetReference()
	if ref == nil {
		return
	}
	tag, ok := ref.(logix.TagInfo)
	if !ok {
		return
	}
	if logix.IsStructure(tag.TypeCode) {
		a.setStatus("Cannot write a structure tag directly")
		return
	}

	form := tview.NewForm()
	form.SetBorder(true).SetTitle(fmt.Sprintf(" Write: %s ", tag.Name))
	form.AddInputField("Value:", "", 30, nil, nil)

	const pageName = "write-dialog"
	close := func() {
		a.pages.RemovePage(pageName)
		a.app.SetFocus(a.tree)
	}

	form.AddButton("Write", func() {
		raw := form.GetFormItemByLabel("Value:").(*tview.InputField).GetText()
		value, err := parseWriteValue(raw)
		if err != nil {
			a.setStatus(fmt.Sprintf("Invalid value: %v", err))
			return
		}
		close()

		client := a.client()
		if client == nil {
			a.setStatus("PLC not connected")
			return
		}
		if err := client.Write(tag.Name, value); err != nil {
			a.setStatus(fmt.Sprintf("Write failed: %v", err))
			return
		}
		a.setStatus(fmt.Sprintf("Wrote %v to %s", value, tag.Name))
		a.showTagValue(tag)
	})
	form.AddButton("Cancel", close)
	form.SetCancelFunc(close)

	modal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(form, 7, 1, true).
			AddItem(nil, 0, 1, false), 45, 1, true).
		AddItem(nil, 0, 1, false)

	a.pages.AddPage(pageName, modal, true, true)
	a.app.SetFocus(form)
}

// parseWriteValue converts a form field's text into a bool, int64, float64,
// or string, in that preference order, matching Client.Write's type switch.
func parseWriteValue(raw string) (interface{}, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty value")
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b, nil
	}
	if i, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}
	return raw, nil
}

func (a *App) setStatus(msg string) {
	a.status.SetText(" " + msg + "  |  /:filter  enter:read/expand  w:write  r:reload  q:quit")
}
