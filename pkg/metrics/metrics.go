package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus del servicio. Se registran en el registry por defecto
// vía promauto; el endpoint /metrics las expone con promhttp.
var (
	// HTTPRequestsTotal total de peticiones HTTP por método, ruta y status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portals_http_requests_total",
			Help: "Total de peticiones HTTP",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration duración de peticiones HTTP en segundos.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portals_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ScansRecorded escaneos NFC registrados, etiquetados por tipo (nfc_tap, qr_scan).
	ScansRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portals_scans_recorded_total",
			Help: "Escaneos NFC registrados",
		},
		[]string{"scan_type"},
	)

	// ScanRecordFailures fallos no fatales al registrar un escaneo.
	ScanRecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portals_scan_record_failures_total",
			Help: "Fallos al persistir escaneos (no fatales)",
		},
	)

	// LandingViews vistas de landing pages resueltas por slug.
	LandingViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portals_landing_views_total",
			Help: "Vistas de landing pages públicas",
		},
	)

	// AnalyzeRequests documentos enviados al resumidor de PDF, por estado final.
	AnalyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portals_analyze_requests_total",
			Help: "Solicitudes de análisis de PDF",
		},
		[]string{"status"},
	)
)
