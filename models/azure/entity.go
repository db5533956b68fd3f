package azure

// Entity is the base type shared by Microsoft Graph resources
type Entity struct {
	Id string `json:"id,omitempty"`
}
