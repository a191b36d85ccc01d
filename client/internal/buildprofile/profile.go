package buildprofile

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// PlaceholderSecret is the access secret shipped in the repository profile.
// Release builds are expected to replace it.
const PlaceholderSecret = "ChangeMe-PerDeployment"

//go:embed profile.yaml
var embeddedProfile []byte

// Profile holds product naming and deployment defaults fixed at build time
type Profile struct {
	Product  Product  `yaml:"product"`
	Temp     Temp     `yaml:"temp"`
	Defaults Defaults `yaml:"defaults"`
}

type Product struct {
	Name         string `yaml:"name"`
	InstallDir   string `yaml:"install_dir"`
	IdentityFile string `yaml:"identity_file"`
}

type Temp struct {
	PayloadPrefix string `yaml:"payload_prefix"`
	LogPrefix     string `yaml:"log_prefix"`
}

type Defaults struct {
	IDRelay    string `yaml:"id_relay"`
	AccessPass string `yaml:"access_pass"`
}

// Load parses the profile compiled into the binary
func Load() (Profile, error) {
	return Parse(embeddedProfile)
}

// Parse decodes and validates a profile. Unknown keys are rejected so a typo
// in a release profile fails the launcher instead of silently using defaults.
func Parse(data []byte) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode build profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid build profile: %w", err)
	}
	return p, nil
}

// Validate checks that every field the launcher relies on is set
func (p Profile) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"product.name", p.Product.Name},
		{"product.install_dir", p.Product.InstallDir},
		{"product.identity_file", p.Product.IdentityFile},
		{"temp.payload_prefix", p.Temp.PayloadPrefix},
		{"temp.log_prefix", p.Temp.LogPrefix},
		{"defaults.id_relay", p.Defaults.IDRelay},
		{"defaults.access_pass", p.Defaults.AccessPass},
	}

	var merr *multierror.Error
	for _, r := range required {
		if r.value == "" {
			merr = multierror.Append(merr, fmt.Errorf("%s is required", r.name))
		}
	}
	return merr.ErrorOrNil()
}

// WithOverrides returns a copy of the profile with non-empty override values
// replacing the built-in defaults
func (p Profile) WithOverrides(idRelay, accessPass string) Profile {
	if idRelay != "" {
		p.Defaults.IDRelay = idRelay
	}
	if accessPass != "" {
		p.Defaults.AccessPass = accessPass
	}
	return p
}

// UsesPlaceholderSecret reports whether the default access secret was never
// replaced for this deployment
func (p Profile) UsesPlaceholderSecret() bool {
	return p.Defaults.AccessPass == PlaceholderSecret
}
