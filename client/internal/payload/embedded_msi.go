//go:build embedmsi

package payload

import _ "embed"

// package.msi is copied next to this file by the release pipeline before
// building with -tags embedmsi
//
//go:embed package.msi
var embeddedMSI []byte
