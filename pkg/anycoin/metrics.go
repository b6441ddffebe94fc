package anycoin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics of a Core.
type Metrics struct {
	// Signing metrics, labelled by coin name and output error code
	SignTotal     *prometheus.CounterVec
	PreimageTotal *prometheus.CounterVec
	CompileTotal  *prometheus.CounterVec

	// Address metrics, labelled by coin name and result
	AddressDerivations *prometheus.CounterVec
	AddressParses      *prometheus.CounterVec

	// LiveHandles counts unreleased handles per kind.
	LiveHandles *prometheus.GaugeVec
}

// NewMetrics initializes and registers the metrics on the default registerer.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegistry(namespace, nil)
}

// NewMetricsWithRegistry initializes and registers the metrics with a custom registry
func NewMetricsWithRegistry(namespace string, registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		SignTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_total",
			Help:      "Total number of sign calls by coin and error code",
		}, []string{"coin", "error"}),
		PreimageTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preimage_hashes_total",
			Help:      "Total number of preimage hash calls by coin and error code",
		}, []string{"coin", "error"}),
		CompileTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compile_total",
			Help:      "Total number of compile calls by coin and error code",
		}, []string{"coin", "error"}),
		AddressDerivations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "address_derivations_total",
			Help:      "Total number of address derivations by coin and result",
		}, []string{"coin", "result"}),
		AddressParses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "address_parses_total",
			Help:      "Total number of address validations by coin and result",
		}, []string{"coin", "result"}),
		LiveHandles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_handles",
			Help:      "Number of unreleased handles by kind",
		}, []string{"kind"}),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
