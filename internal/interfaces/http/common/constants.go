package common

const (
	// MessageServerError is the only detail a client sees for an internal failure.
	MessageServerError = "Server error"
	// MessagePayloadTooLarge answers bodies above the configured limit.
	MessagePayloadTooLarge = "Payload too large"
	// MessageOriginDenied answers cross-origin requests outside the allow-set.
	MessageOriginDenied = "Origin not allowed"
)
