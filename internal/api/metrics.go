package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qr_tokens_issued_total",
		Help: "Session tokens issued for the rotating QR display.",
	})
	marksAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_marked_total",
		Help: "Attendance records committed.",
	})
	marksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_rejected_total",
		Help: "Redemption attempts rejected, by reason.",
	}, []string{"reason"})
)
