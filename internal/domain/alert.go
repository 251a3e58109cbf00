package domain

// AlertSource identifies which remote operation produced an alert.
type AlertSource string

// Alert sources
const (
	AlertCatalogFetch AlertSource = "catalog_fetch"
	AlertUpload       AlertSource = "upload"
	AlertDelete       AlertSource = "delete"
	AlertQuery        AlertSource = "query"
)

// Alert is a single user-facing failure record. At most one alert is
// live at a time; a newer alert supersedes the current one.
type Alert struct {
	Source  AlertSource `json:"source"`
	Message string      `json:"message"`
}
