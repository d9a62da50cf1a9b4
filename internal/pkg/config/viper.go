package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrConfigTypeRequired is returned by NewViperFromBytes when configType is blank.
var ErrConfigTypeRequired = errors.New("config type is required")

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper

	mu        sync.RWMutex
	listeners []func()
}

// NewViper loads configuration from the given file path and watches it for changes.
//
// The config file type is inferred by Viper from the filename extension.
// Environment variables override file values, with "." replaced by "_"
// (for example ELASTICEMAIL_API_KEY overrides elasticemail.api_key).
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filename, path.Ext(filename)))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	vc := &Viper{v: v}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config success reloaded", "path", pathFile)
		vc.notify()
	})
	v.WatchConfig()

	return vc, nil
}

// NewViperFromBytes loads configuration from memory. It is mostly used by tests.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// Set overrides a single key in memory. Listeners are notified as on a file reload.
func (vc *Viper) Set(key string, value any) {
	vc.v.Set(key, value)
	vc.notify()
}

// OnChange registers fn to run after every successful reload.
func (vc *Viper) OnChange(fn func()) {
	if fn == nil {
		return
	}

	vc.mu.Lock()
	vc.listeners = append(vc.listeners, fn)
	vc.mu.Unlock()
}

func (vc *Viper) notify() {
	vc.mu.RLock()
	listeners := append([]func(){}, vc.listeners...)
	vc.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

func (vc *Viper) GetInt32(key string) int32 {
	return vc.v.GetInt32(key)
}

func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key. Comma separated strings are split and
// trimmed; empty elements are dropped.
func (vc *Viper) GetArray(key string) []string {
	var raw []string
	if list, ok := vc.v.Get(key).([]any); ok {
		raw = lo.Map(list, func(item any, _ int) string {
			s, _ := item.(string)
			return s
		})
	} else {
		raw = strings.Split(vc.v.GetString(key), ",")
	}

	return lo.Compact(lo.Map(raw, func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

// Close implements io.Closer. Viper holds no resources of its own.
func (vc *Viper) Close() error {
	return nil
}
