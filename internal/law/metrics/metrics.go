package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	IngestionOperations *prometheus.CounterVec
	BatchRows           *prometheus.CounterVec
	SessionsIssued      prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		IngestionOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lexgate_ingestion_operations_total",
			Help: "Total ingestion operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		BatchRows: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lexgate_batch_rows_total",
			Help: "Total batch import rows by outcome",
		}, []string{"outcome"}),
		SessionsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lexgate_upload_sessions_issued_total",
			Help: "Total upload sessions issued",
		}),
	}
}

func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.IngestionOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveBatchRows(success, failure int) {
	if m == nil {
		return
	}
	m.BatchRows.WithLabelValues("success").Add(float64(success))
	m.BatchRows.WithLabelValues("failure").Add(float64(failure))
}

func (m *Metrics) SessionIssued() {
	if m == nil {
		return
	}
	m.SessionsIssued.Inc()
}
