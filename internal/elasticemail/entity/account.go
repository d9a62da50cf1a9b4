package entity

import (
	"strconv"
	"strings"
	"time"
)

// AccountDetails maps each child element of the account-details document to its text.
type AccountDetails map[string]string

// Credit returns the numeric "credit" entry and whether it parsed.
func (a AccountDetails) Credit() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(a["credit"]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ChannelList maps channel name to itself, ready to use as select options.
type ChannelList map[string]string

// ActivityLogRow is one CSV record of the activity log.
type ActivityLogRow []string

// ActivityStatus filters the activity log.
type ActivityStatus int

const (
	ActivityStatusAll          ActivityStatus = 0
	ActivityStatusReadyToSend  ActivityStatus = 1
	ActivityStatusInProgress   ActivityStatus = 2
	ActivityStatusBounced      ActivityStatus = 4
	ActivityStatusSent         ActivityStatus = 5
	ActivityStatusOpened       ActivityStatus = 6
	ActivityStatusClicked      ActivityStatus = 7
	ActivityStatusUnsubscribed ActivityStatus = 8
	ActivityStatusAbuseReport  ActivityStatus = 9
)

var activityStatusLabels = map[ActivityStatus]string{
	ActivityStatusAll:          "All",
	ActivityStatusReadyToSend:  "Ready To Send",
	ActivityStatusInProgress:   "In Progress",
	ActivityStatusBounced:      "Bounced",
	ActivityStatusSent:         "Sent",
	ActivityStatusOpened:       "Opened",
	ActivityStatusClicked:      "Clicked",
	ActivityStatusUnsubscribed: "Unsubscribed",
	ActivityStatusAbuseReport:  "Abuse Report",
}

// ActivityStatuses lists every status in display order.
func ActivityStatuses() []ActivityStatus {
	return []ActivityStatus{
		ActivityStatusAll,
		ActivityStatusReadyToSend,
		ActivityStatusInProgress,
		ActivityStatusBounced,
		ActivityStatusSent,
		ActivityStatusOpened,
		ActivityStatusClicked,
		ActivityStatusUnsubscribed,
		ActivityStatusAbuseReport,
	}
}

func (s ActivityStatus) Valid() bool {
	_, ok := activityStatusLabels[s]
	return ok
}

func (s ActivityStatus) String() string {
	if l, ok := activityStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// ActivityLogDateLayout is the provider's date format for the from/to bounds.
const ActivityLogDateLayout = "01/02/2006 03:04 PM"

// ActivityLogFilter narrows a status/log call.
type ActivityLogFilter struct {
	Status  ActivityStatus
	Channel string
	From    time.Time
	To      time.Time
}

// CreditStatus is the result of comparing the account credit with the configured threshold.
type CreditStatus struct {
	Credit    float64
	Currency  string
	Threshold float64
	Low       bool
	Message   string
}
