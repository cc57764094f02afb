package collect

// Tab is an open or saved browser tab.
type Tab struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Collection is a named group of tabs. Its ID becomes a tag on every
// document it contains.
type Collection struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Tabs []Tab  `json:"tabs" yaml:"tabs"`
}

// Bookmark is a leaf of the browser bookmark tree.
type Bookmark struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Content is the stored text of a visited page.
type Content struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	URL           string            `json:"url" yaml:"url"`
	Content       string            `json:"content" yaml:"content"`
	Metas         map[string]string `json:"metas,omitempty" yaml:"metas,omitempty"`
	CollectionIDs []string          `json:"collectionIds,omitempty" yaml:"collectionIds,omitempty"`

	// Expires is the expiry time in unix milliseconds. Zero never expires.
	Expires int64 `json:"expires" yaml:"expires"`
}
