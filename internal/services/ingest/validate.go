package ingest

import (
	"unicode/utf8"

	pingdomain "github.com/delta-iot/pingwatch/internal/domain/ping"
)

// MaxDeviceIDLength bounds device ids in characters, matching the storage
// contract of 255 code points regardless of byte length.
const MaxDeviceIDLength = 255

// Validate checks a decoded ping payload and extracts the device id.
// Rules apply in order and the first failure wins; the function has no
// side effects and never touches the store.
func Validate(data map[string]any) (string, error) {
	if data == nil {
		return "", &pingdomain.ValidationError{
			Kind:    pingdomain.ValidationMissingBody,
			Message: "No JSON data provided",
		}
	}
	raw, ok := data["device_id"]
	if !ok {
		return "", &pingdomain.ValidationError{
			Kind:    pingdomain.ValidationMissingField,
			Message: "Missing required field: device_id",
		}
	}
	deviceID, ok := raw.(string)
	if !ok || deviceID == "" {
		return "", &pingdomain.ValidationError{
			Kind:    pingdomain.ValidationInvalidType,
			Message: "device_id must be a non-empty string",
		}
	}
	if utf8.RuneCountInString(deviceID) > MaxDeviceIDLength {
		return "", &pingdomain.ValidationError{
			Kind:    pingdomain.ValidationTooLong,
			Message: "device_id too long (max 255 characters)",
		}
	}
	return deviceID, nil
}
