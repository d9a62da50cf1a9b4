// Package validator validates request structs.
//
// Handlers depend on the Validator interface; V10Validator is the
// go-playground/validator implementation with English messages.
package validator
