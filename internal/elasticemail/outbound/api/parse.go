package api

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
)

const (
	pathAccountDetails = "account-details"
	pathChannelList    = "channel/list"
	pathActivityLog    = "status/log"
)

// AccountDetailsCall reads the account-details document.
func AccountDetailsCall(creds entity.Credentials) Call[entity.AccountDetails] {
	return NewCall(pathAccountDetails, creds, parseAccountDetails)
}

// ChannelListCall reads the channel/list document.
func ChannelListCall(creds entity.Credentials) Call[entity.ChannelList] {
	return NewCall(pathChannelList, creds, parseChannelList)
}

// ActivityLogCall reads status/log as CSV for filter.
func ActivityLogCall(creds entity.Credentials, filter entity.ActivityLogFilter) Call[[]entity.ActivityLogRow] {
	call := NewCall(pathActivityLog, creds, parseActivityLog)
	call.params.Set("format", "csv")
	call.params.Set("status", strconv.Itoa(int(filter.Status)))
	call.params.Set("channel", filter.Channel)
	call.params.Set("from", formatDate(filter.From))
	call.params.Set("to", formatDate(filter.To))
	return call
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.ActivityLogDateLayout)
}

// xmlChild is one element directly under the document root.
type xmlChild struct {
	name  string
	attrs []xml.Attr
	text  string
}

// rootChildren returns the direct children of the root element, each with its
// own character data (nested elements' text is not included).
func rootChildren(payload []byte) ([]xmlChild, error) {
	dec := xml.NewDecoder(bytes.NewReader(payload))

	var (
		children []xmlChild
		depth    int
		sawRoot  bool
		text     strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				if sawRoot {
					return nil, errors.New("multiple root elements")
				}
				sawRoot = true
			}
			if depth == 2 {
				children = append(children, xmlChild{name: t.Name.Local, attrs: t.Attr})
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				children[len(children)-1].text = text.String()
			}
			depth--
		}
	}

	if !sawRoot {
		return nil, errors.New("no root element")
	}
	return children, nil
}

func parseAccountDetails(payload []byte) (entity.AccountDetails, error) {
	children, err := rootChildren(payload)
	if err != nil || len(children) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrParse, payload)
	}

	details := make(entity.AccountDetails, len(children))
	for _, c := range children {
		details[c.name] = c.text
	}
	return details, nil
}

func parseChannelList(payload []byte) (entity.ChannelList, error) {
	children, err := rootChildren(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrParse, payload)
	}

	channels := make(entity.ChannelList, len(children))
	for _, c := range children {
		for _, a := range c.attrs {
			if a.Name.Local == "name" && a.Value != "" {
				channels[a.Value] = a.Value
			}
		}
	}
	return channels, nil
}

// parseActivityLog reads one CSV record per line and drops the header row.
func parseActivityLog(payload []byte) ([]entity.ActivityLogRow, error) {
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")

	rows := make([]entity.ActivityLogRow, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 {
			continue
		}
		if line == "" {
			rows = append(rows, entity.ActivityLogRow{""})
			continue
		}

		r := csv.NewReader(strings.NewReader(line))
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		record, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: activity log line %d: %w", entity.ErrParse, i+1, err)
		}
		rows = append(rows, entity.ActivityLogRow(record))
	}
	return rows, nil
}
