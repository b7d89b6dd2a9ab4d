package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerGraphQLOnce sync.Once

	graphqlOperationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumeapp",
			Subsystem: "graphql",
			Name:      "operations_total",
			Help:      "GraphQL 操作总数，按操作名与结果区分。",
		},
		[]string{"operation", "status"},
	)
)

// ObserveGraphQLOperation 记录一次 GraphQL 操作的执行结果。
func ObserveGraphQLOperation(operation string, err error) {
	registerGraphQLOnce.Do(func() {
		prometheus.MustRegister(graphqlOperationTotal)
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	graphqlOperationTotal.WithLabelValues(operation, status).Inc()
}
