package model

// File is a note loaded from the inbox.
// Files are immutable once loaded; the working set is replaced wholesale
// on every refresh.
type File struct {
	Path    string `json:"path"` // vault-relative, unique key
	Name    string `json:"name"`
	Content string `json:"content"`
}
