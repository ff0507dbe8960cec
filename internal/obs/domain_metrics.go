package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrdersSubmitted counts checkout submissions by outcome.
	OrdersSubmitted *prometheus.CounterVec
	// OrderStatusChanges counts admin status transitions by target status.
	OrderStatusChanges *prometheus.CounterVec
	// OrderEmailsTotal tracks confirmation email delivery outcomes.
	OrderEmailsTotal *prometheus.CounterVec
	// CartOperations counts cart mutations by operation and outcome.
	CartOperations *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrdersSubmitted = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Count of checkout submission outcomes.",
		}, []string{"result"}))
		OrderStatusChanges = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Count of applied order status transitions.",
		}, []string{"status"}))
		OrderEmailsTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_emails_total",
			Help:      "Count of order confirmation email delivery outcomes.",
		}, []string{"result"}))
		CartOperations = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Count of cart mutations by operation.",
		}, []string{"op", "result"}))
	})
}
