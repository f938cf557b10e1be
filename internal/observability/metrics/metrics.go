package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	WalletCreationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_creations_total",
			Help: "Total number of wallet creation attempts.",
		},
		[]string{"service", "result"},
	)

	WalletDecryptFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_decrypt_failures_total",
			Help: "Records whose stored ciphertext failed to decrypt during listing.",
		},
		[]string{"service"},
	)

	TOTPVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "totp_verifications_total",
			Help: "Total number of TOTP verification attempts.",
		},
		[]string{"service", "result"},
	)

	AuthRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"service", "result"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "result"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)
	WalletCreationsTotal = WalletCreationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	WalletDecryptFailuresTotal = WalletDecryptFailuresTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	TOTPVerificationsTotal = TOTPVerificationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	AuthRegistrationsTotal = AuthRegistrationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	AuthLoginsTotal = AuthLoginsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		WalletCreationsTotal,
		WalletDecryptFailuresTotal,
		TOTPVerificationsTotal,
		AuthRegistrationsTotal,
		AuthLoginsTotal,
	)
}
