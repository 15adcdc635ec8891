package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/dastanaron/tabmarks/internal/models"

	"golang.org/x/net/html"
)

// Titles given to the well-known roots
const (
	BookmarkBarTitle = "Bookmarks bar"
	OtherTitle       = "Other bookmarks"
	SyncedTitle      = "Mobile bookmarks"
)

// firstGeneratedID is where ids for nodes without a browser id start
const firstGeneratedID = 10

type nodeRec struct {
	node     models.BookmarkNode
	children []*nodeRec
}

func (r *nodeRec) build() models.BookmarkNode {
	n := r.node
	if r.node.URL == "" {
		n.Children = make([]models.BookmarkNode, 0, len(r.children))
		for _, c := range r.children {
			n.Children = append(n.Children, c.build())
		}
	}
	return n
}

// ParseNetscape parses a Netscape bookmark file (the HTML export format of
// every major browser) into a bookmark tree with a single root. The folder
// flagged PERSONAL_TOOLBAR_FOLDER becomes the bookmark bar; when no folder is
// flagged, all top-level entries are placed on the bar.
func ParseNetscape(r io.Reader) ([]models.BookmarkNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	nextID := firstGeneratedID
	newID := func() string {
		id := strconv.Itoa(nextID)
		nextID++
		return id
	}

	top := &nodeRec{}
	var toolbar *nodeRec
	folderStack := []*nodeRec{top}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		parent := folderStack[len(folderStack)-1]

		// Found folder header <H3 ...>
		if n.Type == html.ElementNode && n.Data == "h3" {
			folder := &nodeRec{node: models.BookmarkNode{
				ID:       newID(),
				ParentID: parent.node.ID,
				Title:    strings.TrimSpace(textContent(n)),
			}}
			// the toolbar folder becomes the bar wherever it sits, so it is
			// kept out of its parent
			if strings.EqualFold(attr(n, "personal_toolbar_folder"), "true") && toolbar == nil {
				toolbar = folder
			} else {
				parent.children = append(parent.children, folder)
			}
			folderStack = append(folderStack, folder)
			return
		}

		// Found bookmark <A HREF=...>
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if href != "" {
				parent.children = append(parent.children, &nodeRec{node: models.BookmarkNode{
					ID:       newID(),
					ParentID: parent.node.ID,
					Title:    strings.TrimSpace(textContent(n)),
					URL:      href,
				}})
			}
			return
		}

		// Recursively traverse children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		// When exiting DL container - "close" current folder
		if n.Type == html.ElementNode && n.Data == "dl" && len(folderStack) > 1 {
			folderStack = folderStack[:len(folderStack)-1]
		}
	}

	walk(doc)
	return []models.BookmarkNode{assembleRoot(top, toolbar)}, nil
}

// assembleRoot places the parsed entries under the well-known root ids
func assembleRoot(top, toolbar *nodeRec) models.BookmarkNode {
	bar := &nodeRec{node: models.BookmarkNode{ID: models.BookmarkBarID, ParentID: models.RootID, Title: BookmarkBarTitle}}
	other := &nodeRec{node: models.BookmarkNode{ID: models.OtherID, ParentID: models.RootID, Title: OtherTitle}}

	if toolbar == nil {
		bar.children = top.children
	} else {
		bar.children = toolbar.children
		other.children = top.children
	}
	reparent(bar)
	reparent(other)

	root := &nodeRec{node: models.BookmarkNode{ID: models.RootID}, children: []*nodeRec{bar, other}}
	return root.build()
}

func reparent(r *nodeRec) {
	for _, c := range r.children {
		c.node.ParentID = r.node.ID
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
