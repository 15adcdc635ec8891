package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/dastanaron/tabmarks/internal/models"
)

// LoadErrorMessage replaces the bookmark list when the tree cannot be read
const LoadErrorMessage = "Could not load bookmarks. Please reload the page."

// Link is one rendered bookmark
type Link struct {
	ID     string
	Title  string // display title: the bookmark title, or its url
	URL    string
	Icon   template.URL
	Icons  []string // favicon candidates after Icon, tried in order
	Tags   []string
	Hidden bool
}

// Section is one rendered folder
type Section struct {
	Title  string
	Icon   template.HTML
	Links  []Link
	Hidden bool
}

// Page is the view model of the new-tab page
type Page struct {
	Sections []Section
	Error    string
	Query    string

	Settings        models.AppSettings
	Themes          []models.Theme
	BodyClasses     []string
	ContainerStyle  template.CSS
	BackgroundImage string
}

// BuildPage turns grouped folders and their tags into a page
func BuildPage(folders []models.Folder, tags models.TagSet, s models.AppSettings) Page {
	p := Page{Themes: models.Themes}
	for _, f := range folders {
		if len(f.Bookmarks) == 0 {
			continue
		}
		section := Section{Title: f.Title, Icon: FolderIcon(f.Title)}
		for _, b := range f.Bookmarks {
			if b.URL == "" {
				continue
			}
			section.Links = append(section.Links, NewLink(b, tags[b.ID]))
		}
		if len(section.Links) > 0 {
			p.Sections = append(p.Sections, section)
		}
	}
	Apply(s, &p)
	return p
}

// ErrorPage is a page showing only an inline error message
func ErrorPage(message string, s models.AppSettings) Page {
	p := Page{Error: message, Themes: models.Themes}
	Apply(s, &p)
	return p
}

// NewLink renders one bookmark
func NewLink(b models.BookmarkNode, tags []string) Link {
	title := b.Title
	if title == "" {
		title = b.URL
	}
	if tags == nil {
		tags = []string{}
	}
	icons := FaviconCandidates(b.URL)
	return Link{
		ID:    b.ID,
		Title: title,
		URL:   b.URL,
		Icon:  template.URL(icons[0]),
		Icons: icons[1:],
		Tags:  tags,
	}
}

// FaviconCandidates lists icon urls for a page, best first, ending with the
// inline default icon.
func FaviconCandidates(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return []string{DefaultIcon}
	}
	host := u.Hostname()
	return []string{
		"https://icon.horse/icon/" + host,
		"https://www.google.com/s2/favicons?domain=" + url.QueryEscape(host) + "&sz=32",
		"https://api.iowen.cn/favicon/" + host + ".png",
		DefaultIcon,
	}
}

// Filter hides links whose title and url do not contain query (case
// insensitive), and sections left without visible links. An empty query
// shows everything.
func Filter(p *Page, query string) {
	p.Query = query
	q := strings.ToLower(query)
	for i := range p.Sections {
		s := &p.Sections[i]
		visible := 0
		for j := range s.Links {
			l := &s.Links[j]
			l.Hidden = !Matches(*l, q)
			if !l.Hidden {
				visible++
			}
		}
		s.Hidden = visible == 0
	}
}

// Matches reports whether the link matches a lower-cased query
func Matches(l Link, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(l.URL), lowerQuery)
}

// VisibleLinks returns the links not hidden by Filter
func (p Page) VisibleLinks() []Link {
	var out []Link
	for _, s := range p.Sections {
		for _, l := range s.Links {
			if !l.Hidden {
				out = append(out, l)
			}
		}
	}
	return out
}
