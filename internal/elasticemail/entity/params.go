package entity

import (
	"net/url"
	"strings"
)

type param struct {
	key   string
	value string
}

// Params is an insertion ordered parameter list. Setting an existing key
// replaces its value in place.
type Params struct {
	items []param
}

// NewParams starts a list with the credential pair, which every call carries first.
func NewParams(creds Credentials) *Params {
	p := &Params{}
	p.Set("username", creds.Username)
	p.Set("api_key", creds.APIKey)
	return p
}

func (p *Params) Set(key, value string) {
	for i := range p.items {
		if p.items[i].key == key {
			p.items[i].value = value
			return
		}
	}
	p.items = append(p.items, param{key: key, value: value})
}

func (p *Params) Get(key string) (string, bool) {
	for _, it := range p.items {
		if it.key == key {
			return it.value, true
		}
	}
	return "", false
}

func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.items))
	for _, it := range p.items {
		keys = append(keys, it.key)
	}
	return keys
}

// Encode renders the list as a form/query string, keeping insertion order.
func (p *Params) Encode() string {
	var sb strings.Builder
	for i, it := range p.items {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(it.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(it.value))
	}
	return sb.String()
}
