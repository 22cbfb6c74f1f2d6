package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operaciones del ledger, expuestos por el servidor de
// monitoreo en /metrics.
var (
	SalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_sales_total",
		Help: "Ventas de carrito procesadas con éxito.",
	})
	SaleCancellations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_sale_cancellations_total",
		Help: "Ventas anuladas.",
	})
	TransfersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_transfers_total",
		Help: "Transferencias entre tiendas (incluye reaprovisionamientos).",
	})
	IntakesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_intakes_total",
		Help: "Aprovisionamientos desde proveedores.",
	})
	ReversalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_reversals_total",
		Help: "Movimientos anulados (transferencias y aprovisionamientos).",
	})
	LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_low_stock_alerts_total",
		Help: "Alertas de stock bajo enviadas.",
	})
)
