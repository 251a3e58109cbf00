package domain

// Document represents an entry in the remote document store. The display
// name doubles as the identifier; the backend is the source of truth and
// the local catalog is only a cache of it.
type Document struct {
	Name string `json:"name"`
}
