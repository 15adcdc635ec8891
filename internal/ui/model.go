package ui

import (
	"context"

	"github.com/dastanaron/tabmarks/internal/messaging"
	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/render"
	"github.com/dastanaron/tabmarks/internal/service"
)

// allSections is the folder list entry showing every section
const allSections = -1

// model holds the page behind the terminal views, independent of tview
type model struct {
	page     render.Page
	selected int // section index, or allSections
}

// loadPage asks the background for the tree, its tags and the settings and
// builds the same page the browser gets
func loadPage(ctx context.Context, d *messaging.Dispatcher, barID string) render.Page {
	settingsResp, err := d.Call(ctx, messaging.Request{Action: messaging.ActionGetSettings})
	s := models.DefaultSettings()
	if err == nil && settingsResp.Settings != nil {
		s = *settingsResp.Settings
	}

	resp, err := d.Call(ctx, messaging.Request{Action: messaging.ActionGetBookmarks})
	if err != nil {
		return render.ErrorPage(render.LoadErrorMessage, s)
	}

	folders, err := service.GroupRoots(resp.Bookmarks, barID)
	if err != nil {
		return render.ErrorPage(render.LoadErrorMessage, s)
	}

	tags := make(models.TagSet, len(resp.BookmarksWithTags))
	for _, b := range resp.BookmarksWithTags {
		tags[b.ID] = b.Tags
	}
	return render.BuildPage(folders, tags, s)
}

func newModel(p render.Page) *model {
	return &model{page: p, selected: allSections}
}

// filter applies the search query and keeps the selection on a visible section
func (m *model) filter(query string) {
	render.Filter(&m.page, query)
	if m.selected != allSections && m.page.Sections[m.selected].Hidden {
		m.selected = allSections
	}
}

// sections returns the indexes of the visible sections
func (m *model) sections() []int {
	var out []int
	for i, s := range m.page.Sections {
		if !s.Hidden {
			out = append(out, i)
		}
	}
	return out
}

// links returns the visible links of the selected section
func (m *model) links() []render.Link {
	if m.selected == allSections {
		return m.page.VisibleLinks()
	}
	var out []render.Link
	for _, l := range m.page.Sections[m.selected].Links {
		if !l.Hidden {
			out = append(out, l)
		}
	}
	return out
}

// setTags replaces the tags of every link with the given bookmark id
func (m *model) setTags(id string, tags []string) {
	for i := range m.page.Sections {
		for j := range m.page.Sections[i].Links {
			if m.page.Sections[i].Links[j].ID == id {
				m.page.Sections[i].Links[j].Tags = tags
			}
		}
	}
}
