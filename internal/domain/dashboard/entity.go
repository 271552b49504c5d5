// internal/domain/dashboard/entity.go
package dashboard

// Section groups tiles on the dashboard.
type Section string

const (
	SectionTransactions Section = "transactions"
	SectionMasterData   Section = "master_data"
	SectionSettings     Section = "settings"
)

// Tile is one count on the dashboard. Disabled tiles need a selected company.
type Tile struct {
	Key      string  `json:"key"`
	Title    string  `json:"title"`
	Section  Section `json:"section"`
	Count    int     `json:"count"`
	Scoped   bool    `json:"scoped"`
	Disabled bool    `json:"disabled"`
	Error    string  `json:"error,omitempty"`
}

// Summary is the whole dashboard view.
type Summary struct {
	CompanyID string `json:"companyId,omitempty"`
	// Notice is shown when scoped tiles are disabled.
	Notice string `json:"notice,omitempty"`
	Tiles  []Tile `json:"tiles"`
}
