package launchconfig

const (
	FlagKeepPayload     = "--keep-msi"
	FlagEndpoint        = "--id-relay"
	FlagAccessSecret    = "--access-pass"
	FlagSecondarySecret = "--conf-pass"
)

var (
	helpFlags   = []string{"--help", "-h", "/?"}
	silentFlags = []string{"--silent", "--quiet", "/S", "/silent", "/verysilent", "/qn"}
)

// Resolver turns raw command line tokens into a Config
type Resolver struct {
	defaults Defaults
}

func NewResolver(defaults Defaults) *Resolver {
	return &Resolver{defaults: defaults}
}

// Resolve scans args once from left to right. The second return value is true
// when a help flag is present anywhere, in which case the Config is zero.
// Unknown tokens are ignored and an option without a following value leaves
// its field at the default.
func (r *Resolver) Resolve(args []string) (Config, bool) {
	for _, a := range args {
		if contains(helpFlags, a) {
			return Config{}, true
		}
	}

	var cfg Config
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case contains(silentFlags, arg):
			cfg.Silent = true
		case arg == FlagKeepPayload:
			cfg.KeepPayload = true
		case arg == FlagEndpoint, arg == FlagAccessSecret, arg == FlagSecondarySecret:
			if i+1 >= len(args) {
				continue
			}
			i++
			setOption(&cfg, arg, args[i])
		}
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = r.defaults.Endpoint
	}
	if cfg.AccessSecret == "" {
		cfg.AccessSecret = r.defaults.AccessSecret
	}
	return cfg, false
}

func setOption(cfg *Config, flag, value string) {
	switch flag {
	case FlagEndpoint:
		cfg.Endpoint = value
	case FlagAccessSecret:
		cfg.AccessSecret = value
	case FlagSecondarySecret:
		cfg.SecondarySecret = value
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
