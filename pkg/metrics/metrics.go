package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served",
	}, []string{"method", "path", "status"})

	OTPIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otp_issued_total",
		Help: "How many one-time passwords were dispatched",
	})

	OTPVerifiedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otp_verified_total",
		Help: "How many one-time passwords were verified successfully",
	})

	OTPFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_failed_total",
		Help: "Failed OTP verifications by reason",
	}, []string{"reason"})

	NotificationsPushedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_pushed_total",
		Help: "Live notification events pushed over websocket",
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		OTPIssuedTotal,
		OTPVerifiedTotal,
		OTPFailedTotal,
		NotificationsPushedTotal,
	)
}
