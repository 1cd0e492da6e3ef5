package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Stock movement metrics
	StockMovements    *prometheus.CounterVec
	MovementDuration  *prometheus.HistogramVec
	InsufficientStock *prometheus.CounterVec
	NegativeStockRows prometheus.Gauge
	MovementRetries   prometheus.Counter

	// Workflow metrics
	TransfersCreated       prometheus.Counter
	TransfersShipped       prometheus.Counter
	TransfersReceived      prometheus.Counter
	AdjustmentsFinalized   prometheus.Counter
	WastesRecorded         prometheus.Counter
	PurchaseOrdersReceived prometheus.Counter
	OrdersCreated          prometheus.Counter
	OrdersPaid             prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	EventErrors     prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		StockMovements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_stock_movements_total",
				Help: "Total ledger movements applied, by operation",
			},
			[]string{"operation"},
		),
		MovementDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_movement_duration_seconds",
				Help:    "Duration of movement transactions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		InsufficientStock: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_insufficient_stock_total",
				Help: "Movements rejected for insufficient stock, by operation",
			},
			[]string{"operation"},
		),
		NegativeStockRows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_negative_stock_rows",
			Help: "Number of ledger rows currently below zero",
		}),
		MovementRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_movement_retries_total",
			Help: "Movement transactions retried after deadlock or serialization failure",
		}),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_transfers_created_total",
			Help: "Total transfers created",
		}),
		TransfersShipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_transfers_shipped_total",
			Help: "Total transfers shipped",
		}),
		TransfersReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_transfers_received_total",
			Help: "Total transfers received",
		}),
		AdjustmentsFinalized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_adjustments_finalized_total",
			Help: "Total stock adjustments finalized",
		}),
		WastesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_wastes_recorded_total",
			Help: "Total waste records created",
		}),
		PurchaseOrdersReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_purchase_orders_received_total",
			Help: "Total purchase orders received into stock",
		}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_orders_created_total",
			Help: "Total sales orders created",
		}),
		OrdersPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_orders_paid_total",
			Help: "Total sales orders fully paid",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_events_published_total",
			Help: "Total outbox events published",
		}),
		EventErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inventory_event_errors_total",
			Help: "Total outbox publish failures",
		}),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
