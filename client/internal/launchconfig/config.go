package launchconfig

// Config is the resolved launcher configuration for one run
type Config struct {
	Silent      bool
	KeepPayload bool
	// Endpoint is the ID/relay server as host:port, never empty
	Endpoint string
	// AccessSecret is the permanent access password, never empty
	AccessSecret string
	// SecondarySecret protects the settings page, empty means not passed on
	SecondarySecret string
}

// Defaults fill unset Config fields
type Defaults struct {
	Endpoint     string
	AccessSecret string
}
