package entity

import "errors"

var (
	// ErrConfiguration means a call was built without an endpoint path.
	ErrConfiguration = errors.New("elasticemail: configuration error")
	// ErrAuth means credentials are missing or were rejected by the provider.
	ErrAuth = errors.New("elasticemail: authentication error")
	// ErrParse means the provider payload was not in the expected shape.
	ErrParse = errors.New("elasticemail: parse error")
	// ErrValidation means required send parameters are missing.
	ErrValidation = errors.New("elasticemail: validation error")
	// ErrTransport means the provider could not be reached or answered with a non-2xx status.
	ErrTransport = errors.New("elasticemail: transport error")
	// ErrRejected means the provider answered a send with something other than a transaction id.
	ErrRejected = errors.New("elasticemail: send rejected")
)
