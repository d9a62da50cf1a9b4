package api

import (
	"testing"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountDetails(t *testing.T) {
	got, err := parseAccountDetails([]byte(`<?xml version="1.0"?>` + accountXML))
	require.NoError(t, err)
	assert.Equal(t, entity.AccountDetails{"credit": "12.50", "currency": "USD", "email": "me@x.com"}, got)

	for name, payload := range map[string]string{
		"empty":     "",
		"not xml":   "this is not xml",
		"childless": "<account/>",
		"broken":    "<account><credit>1</account>",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseAccountDetails([]byte(payload))
			require.ErrorIs(t, err, entity.ErrParse)
			assert.Contains(t, err.Error(), payload)
		})
	}
}

func TestParseAccountDetails_OnlyDirectText(t *testing.T) {
	got, err := parseAccountDetails([]byte(`<a><b>x<c>nested</c>y</b></a>`))
	require.NoError(t, err)
	assert.Equal(t, entity.AccountDetails{"b": "xy"}, got)
}

func TestParseChannelList(t *testing.T) {
	got, err := parseChannelList([]byte(`<channels><channel name="A"/><channel name="B"></channel><channel/></channels>`))
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelList{"A": "A", "B": "B"}, got)

	_, err = parseChannelList([]byte("garbage"))
	assert.ErrorIs(t, err, entity.ErrParse)
}

func TestParseActivityLog(t *testing.T) {
	got, err := parseActivityLog([]byte("to,status\nfoo@x.com,5\nbar@x.com,6"))
	require.NoError(t, err)
	assert.Equal(t, []entity.ActivityLogRow{{"foo@x.com", "5"}, {"bar@x.com", "6"}}, got)

	got, err = parseActivityLog([]byte(`to,subject` + "\n" + `"a@x.com","hello, world"`))
	require.NoError(t, err)
	assert.Equal(t, []entity.ActivityLogRow{{"a@x.com", "hello, world"}}, got)

	got, err = parseActivityLog([]byte("  header only \n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
