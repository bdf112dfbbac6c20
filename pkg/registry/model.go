package registry

import "time"

type Asset struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	MetadataURI   string    `json:"metadata_uri"`
	CulturalValue int64     `json:"cultural_value"`
	Creator       string    `json:"creator"`
	CurrentOwner  string    `json:"current_owner"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AssetList struct {
	Items []Asset `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// Ownership is the registry lookup result the pricing and settlement paths
// depend on: the immutable cultural value plus the current owner identity.
type Ownership struct {
	CulturalValue int64
	Owner         string
	ContactEmail  string
}
