package models

// Well-known node ids of the browser bookmark tree
const (
	RootID        = "0"
	BookmarkBarID = "1"
	OtherID       = "2"
	SyncedID      = "3"
)

// UncategorizedTitle is the bucket for links placed directly on the bookmark bar
const UncategorizedTitle = "Uncategorized"

// BookmarkNode is a node of the browser bookmark tree.
// A node with a URL is a link, a node with Children is a folder.
type BookmarkNode struct {
	ID       string         `json:"id"`
	ParentID string         `json:"parentId,omitempty"`
	Title    string         `json:"title"`
	URL      string         `json:"url,omitempty"`
	Children []BookmarkNode `json:"children,omitempty"`
}

// IsLink reports whether the node points to a page
func (n BookmarkNode) IsLink() bool {
	return n.URL != ""
}

// IsFolder reports whether the node groups other nodes
func (n BookmarkNode) IsFolder() bool {
	return n.URL == "" && n.Children != nil
}

// Folder is a rendered group of bookmarks, derived on every load
type Folder struct {
	Title     string         `json:"title"`
	Bookmarks []BookmarkNode `json:"bookmarks"`
	// Uncategorized marks the bucket of links placed directly on the bar
	Uncategorized bool `json:"-"`
}

// TagSet maps bookmark ids to their tags
type TagSet map[string][]string

// MaxTags is the maximum number of tags kept per bookmark
const MaxTags = 5

// BookmarkWithTags is a flattened link together with its stored tags
type BookmarkWithTags struct {
	BookmarkNode
	Tags []string `json:"tags"`
}
