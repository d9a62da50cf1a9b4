package config

import (
	"io"
	"time"
)

// DurationConfig reads integer settings and scales them into a time.Duration.
type DurationConfig interface {
	// GetSecond reads key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMinute reads key as a number of minutes.
	GetMinute(key string) time.Duration
}

// Config is the settings provider shared by every module.
//
// Values are read on every call so a reloaded file is observed without a
// restart. Missing keys return the zero value of the requested type.
type Config interface {
	io.Closer
	DurationConfig

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value associated with key as an int32.
	GetInt32(key string) int32

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetArray retrieves the value associated with key as a slice of strings.
	// The value is stored as <element1>,<element2>,... ; a native list is accepted too.
	GetArray(key string) []string

	// OnChange registers fn to be called after the underlying source is reloaded.
	OnChange(fn func())
}
