package azure

// Response is the paged collection envelope returned by Microsoft Graph and Azure Resource Manager.
// Graph names the continuation "@odata.nextLink" while Resource Manager names it "nextLink".
type Response[T any] struct {
	Context      string `json:"@odata.context,omitempty"`
	GraphNext    string `json:"@odata.nextLink,omitempty"`
	ResourceNext string `json:"nextLink,omitempty"`
	Value        []T    `json:"value"`
}

func (s Response[T]) NextLink() string {
	if s.GraphNext != "" {
		return s.GraphNext
	}
	return s.ResourceNext
}
