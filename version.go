package breeze

// Version is the library version, reported in the User-Agent header.
const Version = "0.1.0"

// defaultUserAgent identifies the client to the Breeze service.
const defaultUserAgent = "gobreeze/" + Version

// Endpoint paths of the Breeze REST API.
const (
	endpointPeople         = "people"
	endpointEvents         = "events"
	endpointProfileFields  = "profile"
	endpointContributions  = "giving"
	endpointFunds          = "funds"
	endpointPledges        = "pledges"
	endpointTags           = "tags"
	endpointAccountSummary = "account/summary"
	endpointForms          = "forms"
)
