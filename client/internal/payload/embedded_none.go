//go:build !embedmsi

package payload

var embeddedMSI []byte
