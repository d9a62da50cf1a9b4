package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_OrderAndReplace(t *testing.T) {
	p := NewParams(Credentials{Username: "u", APIKey: "k"})
	p.Set("format", "csv")
	p.Set("to", "a@x.com; b@x.com")
	p.Set("username", "v")

	assert.Equal(t, []string{"username", "api_key", "format", "to"}, p.Keys())
	assert.Equal(t, "username=v&api_key=k&format=csv&to=a%40x.com%3B+b%40x.com", p.Encode())

	v, ok := p.Get("format")
	assert.True(t, ok)
	assert.Equal(t, "csv", v)
}

func TestCredentials_Valid(t *testing.T) {
	assert.True(t, Credentials{Username: "u", APIKey: "k"}.Valid())
	assert.False(t, Credentials{Username: "u"}.Valid())
	assert.False(t, Credentials{APIKey: "k"}.Valid())
}

func TestOutgoingMessage_Header(t *testing.T) {
	m := OutgoingMessage{Headers: map[string]string{"content-type": "text/plain", "Cc": "c@x.com"}}

	assert.Equal(t, "text/plain", m.Header("Content-Type"))
	assert.Equal(t, "c@x.com", m.Header("cc"))
	assert.Empty(t, m.Header("Bcc"))
}

func TestDeliveryOutcome(t *testing.T) {
	ok := DeliveryOutcome{Success: &SendSuccess{TxID: "id", Message: "Success [id]"}}
	assert.True(t, ok.Delivered())
	assert.Equal(t, "Success [id]", ok.Text())

	bad := DeliveryOutcome{Error: &SendError{Message: `<b>"nope"</b>`}}
	assert.False(t, bad.Delivered())
	assert.Equal(t, "&lt;b&gt;&#34;nope&#34;&lt;/b&gt;", bad.SafeMessage())

	assert.Empty(t, DeliveryOutcome{}.Text())
}

func TestAccountDetails_Credit(t *testing.T) {
	v, ok := AccountDetails{"credit": "12.5"}.Credit()
	assert.True(t, ok)
	assert.InDelta(t, 12.5, v, 0.0001)

	_, ok = AccountDetails{}.Credit()
	assert.False(t, ok)
}

func TestActivityStatus(t *testing.T) {
	assert.Len(t, ActivityStatuses(), 9)
	assert.Equal(t, "Abuse Report", ActivityStatusAbuseReport.String())
	assert.False(t, ActivityStatus(3).Valid())
	assert.Equal(t, "Unknown", ActivityStatus(3).String())
}
