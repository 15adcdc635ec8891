package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dastanaron/tabmarks/internal/messaging"
	"github.com/dastanaron/tabmarks/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
)

const (
	ModeNormal = 1
	ModeSearch = 2
	ModeModal  = 3
)

// App represents the TUI application
type App struct {
	app        *tview.Application
	folderList *tview.List
	list       *tview.List
	detail     *tview.TextView
	search     *tview.InputField
	pages      *tview.Pages
	status     *tview.TextView
	mode       uint8

	dispatcher *messaging.Dispatcher
	barID      string
	log        logrus.FieldLogger

	model          *model
	links          []render.Link // links shown in list
	sectionIndexes []int         // folderList row i (i > 0) shows section sectionIndexes[i-1]
	focusOnFolders bool
}

// NewApp creates a new application instance
func NewApp(dispatcher *messaging.Dispatcher, barID string, log logrus.FieldLogger) *App {
	return &App{
		app:        tview.NewApplication(),
		folderList: tview.NewList(),
		list:       tview.NewList(),
		detail:     tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:     tview.NewInputField().SetLabel("Search: "),
		pages:      tview.NewPages(),
		status:     tview.NewTextView().SetDynamicColors(true),
		mode:       ModeNormal,
		dispatcher: dispatcher,
		barID:      barID,
		log:        log.WithField("component", "tui"),
	}
}

// Run starts the application
func (a *App) Run(ctx context.Context) error {
	a.list.SetBorder(true).SetTitle("Bookmarks")
	a.detail.SetBorder(true).SetTitle("Details")
	a.folderList.SetBorder(true).SetTitle("Folders")

	cols := tview.NewFlex().
		AddItem(a.folderList, 0, 1, false).
		AddItem(a.list, 0, 3, true).
		AddItem(a.detail, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", main, true, true)

	a.model = newModel(loadPage(ctx, a.dispatcher, a.barID))
	a.fillFolderList()
	a.fillList()

	a.search.SetChangedFunc(a.onSearchChange)
	a.search.SetDoneFunc(a.onSearchDone)
	a.list.SetChangedFunc(func(int, string, string, rune) { a.showDetails() })

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput(ctx))
	a.updateStatus()

	if a.model.page.Error != "" {
		a.showError(a.model.page.Error)
	} else {
		a.app.SetFocus(a.list)
	}

	stop := context.AfterFunc(ctx, a.app.Stop)
	defer stop()
	return a.app.Run()
}

func (a *App) updateStatus() {
	countText := fmt.Sprintf(" [::b]%d[::r] bookmarks", len(a.links))
	statusText := "[::b]Tab[::r] switch  [::b]/[::r] search  [::b]t[::r] tags  [::b]Enter[::r] open  [::b]q[::r] quit" + countText
	if a.focusOnFolders {
		statusText = "[::b]Tab[::r] switch  [::b]Enter[::r] select  [::b]/[::r] search  [::b]q[::r] quit" + countText
	}
	a.status.SetText(statusText)
}

func (a *App) fillFolderList() {
	a.folderList.Clear()
	a.sectionIndexes = a.model.sections()

	a.folderList.AddItem("All Bookmarks", "", 0, nil)
	current := 0
	for row, idx := range a.sectionIndexes {
		s := a.model.page.Sections[idx]
		a.folderList.AddItem(fmt.Sprintf("📁 %s", s.Title), "", 0, nil)
		if idx == a.model.selected {
			current = row + 1
		}
	}
	a.folderList.SetCurrentItem(current)
}

func (a *App) fillList() {
	a.list.Clear()
	a.links = a.model.links()
	for _, l := range a.links {
		a.list.AddItem(l.Title, l.URL, 0, nil)
	}

	if a.model.selected == allSections {
		a.list.SetTitle("Bookmarks (All)")
	} else {
		a.list.SetTitle(fmt.Sprintf("Bookmarks (%s)", a.model.page.Sections[a.model.selected].Title))
	}
	a.showDetails()
}

func (a *App) currentLink() *render.Link {
	i := a.list.GetCurrentItem()
	if i < 0 || i >= len(a.links) {
		return nil
	}
	return &a.links[i]
}

func (a *App) showDetails() {
	l := a.currentLink()
	if l == nil {
		a.detail.SetText("")
		return
	}

	tags := "-"
	if len(l.Tags) > 0 {
		tags = strings.Join(l.Tags, ", ")
	}
	a.detail.SetText(fmt.Sprintf(
		"[::b]Title:[::-]\n%s\n\n[::b]URL:[::-]\n%s\n\n[::b]Tags:[::-]\n%s",
		tview.Escape(l.Title), tview.Escape(l.URL), tview.Escape(tags)))
}

func (a *App) onFolderSelect(row int) {
	if row <= 0 || row > len(a.sectionIndexes) {
		a.model.selected = allSections
	} else {
		a.model.selected = a.sectionIndexes[row-1]
	}
	a.fillList()
	a.updateStatus()

	a.focusOnFolders = false
	a.app.SetFocus(a.list)
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	case ModeNormal:
		if a.focusOnFolders {
			a.app.SetFocus(a.folderList)
		} else {
			a.app.SetFocus(a.list)
		}
	}
}

// toggleFocus switches between the folder list and the bookmark list
func (a *App) toggleFocus() {
	a.focusOnFolders = !a.focusOnFolders
	if a.focusOnFolders {
		a.app.SetFocus(a.folderList)
	} else {
		a.app.SetFocus(a.list)
	}
	a.updateStatus()
}

func (a *App) onSearchChange(text string) {
	a.model.filter(text)
	a.fillFolderList()
	a.fillList()
	a.updateStatus()
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.setMode(ModeNormal)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.setMode(ModeNormal)
	}
}

// generateTags asks the background for new tags of the current link. The
// request runs off the UI goroutine and the result is drawn through
// QueueUpdateDraw.
func (a *App) generateTags(ctx context.Context) {
	l := a.currentLink()
	if l == nil {
		return
	}
	id, url, title := l.ID, l.URL, l.Title
	a.status.SetText(fmt.Sprintf("Generating tags for '%s'...", tview.Escape(title)))

	go func() {
		resp, err := a.dispatcher.Call(ctx, messaging.Request{
			Action:     messaging.ActionGenerateTags,
			URL:        url,
			BookmarkID: id,
		})
		if err == nil && resp.Error != "" {
			err = fmt.Errorf("%s", resp.Error)
		}
		if err != nil {
			a.log.WithError(err).WithField("id", id).Warn("Generating tags failed")
		}

		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.showError(fmt.Sprintf("Error generating tags: %v", err))
				return
			}
			a.model.setTags(id, resp.Tags)
			current := a.list.GetCurrentItem()
			a.fillList()
			a.list.SetCurrentItem(current)
			a.updateStatus()
		})
	}()
}

func (a *App) globalInput(ctx context.Context) func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		if a.pages.HasPage("error") {
			return event
		}

		if a.mode != ModeNormal {
			return event
		}

		if event.Key() == tcell.KeyTab {
			a.toggleFocus()
			return nil
		}

		if a.focusOnFolders {
			switch event.Key() {
			case tcell.KeyEnter:
				a.onFolderSelect(a.folderList.GetCurrentItem())
				return nil
			case tcell.KeyRune:
				switch event.Rune() {
				case 'q':
					a.app.Stop()
					return nil
				case '/':
					a.setMode(ModeSearch)
					return nil
				}
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyEnter:
			if l := a.currentLink(); l != nil {
				if err := openURL(l.URL); err != nil {
					a.showError(fmt.Sprintf("Error opening link: %v", err))
				}
			}
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case '/':
				a.setMode(ModeSearch)
				return nil
			case 't':
				a.generateTags(ctx)
				return nil
			case 'q':
				a.app.Stop()
				return nil
			}
		}
		return event
	}
}

func (a *App) showError(message string) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.RemovePage("error")
			a.setMode(ModeNormal)
		})

	modal.SetBorder(true).SetTitle("Error")
	a.pages.AddPage("error", modal, true, true)
	a.mode = ModeModal
	a.app.SetFocus(modal)
}

func openURL(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	return exec.Command(cmd, args...).Start()
}
