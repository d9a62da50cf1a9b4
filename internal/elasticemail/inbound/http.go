package inbound

import (
	"github.com/shandysiswandi/elasticmail/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/elasticemail/settings", end.SettingsStatus)
	r.GET("/api/v1/elasticemail/account", end.AccountDetails)
	r.GET("/api/v1/elasticemail/credit", end.Credit)
	r.GET("/api/v1/elasticemail/channels", end.ChannelList)
	r.GET("/api/v1/elasticemail/activity-statuses", end.ActivityStatuses)
	r.GET("/api/v1/elasticemail/activity-log", end.ActivityLog)
	r.GET("/api/v1/elasticemail/deliveries", end.ListDeliveries)
	r.POST("/api/v1/elasticemail/test", end.SendTestEmail)

	r.POST("/api/v1/mail", end.Mail)
}
