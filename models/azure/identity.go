package azure

// Identity defines the model for the Azure Identity resource type
// https://learn.microsoft.com/en-us/graph/api/resources/identity?view=graph-rest-1.0
type Identity struct {
	Entity

	DisplayName string `json:"displayName,omitempty"`
}
