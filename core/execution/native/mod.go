// Package native implements the invocation of contracts written in Go and
// packaged with the application.
//
// Contracts register under a name on the registry, and every invocation runs
// on a key space private to that name, so one contract can never read or
// write the entries of another.
//
// Documentation Last Review: 05.02.2026
package native

import (
	"github.com/duet-dlt/duet"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/core/execution"
	"github.com/duet-dlt/duet/core/store"
	"github.com/duet-dlt/duet/core/store/prefixed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// defines prometheus metrics
var (
	promCalls = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duet_execution_calls_total",
		Help: "total number of contract invocations",
	})

	promRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duet_execution_rejections_total",
		Help: "total number of rejected contract invocations",
	})
)

func init() {
	duet.PromCollectors = append(duet.PromCollectors, promCalls, promRejections)
}

// Registry routes the platform invocations to the registered contracts.
type Registry struct {
	contracts map[string]execution.Contract
	logger    zerolog.Logger
}

// NewRegistry creates an empty contract registry.
func NewRegistry() *Registry {
	return &Registry{
		contracts: map[string]execution.Contract{},
		logger:    duet.Logger.With().Str("package", "native").Logger(),
	}
}

// Set stores the contract using the name as the key. Messages addressed to
// that name will trigger it. Registering a name twice is a programming error
// and panics.
func (r *Registry) Set(name string, contract execution.Contract) {
	if _, ok := r.contracts[name]; ok {
		panic(xerrors.Errorf("contract '%s' already registered", name))
	}

	r.contracts[name] = contract
}

// Execute routes a message to the named contract, running on its private key
// space.
func (r *Registry) Execute(name string, snap store.Snapshot,
	ctx execution.Context, msg []byte) (execution.Response, error) {

	contract := r.contracts[name]
	if contract == nil {
		return execution.Response{}, xerrors.Errorf("unknown contract '%s'", name)
	}

	promCalls.Inc()

	res, err := contract.Execute(prefixed.NewSnapshot(name, snap), ctx, msg)
	if err != nil {
		promRejections.Inc()

		r.logger.Warn().
			Str("contract", name).
			Err(err).
			Msg("execution rejected")

		return execution.Response{}, xerrors.Errorf("contract '%s': %w", name, err)
	}

	return res, nil
}

// Reply routes a submission callback to the named contract, running on its
// private key space.
func (r *Registry) Reply(name string, snap store.Snapshot,
	reply chain.Reply) (execution.Response, error) {

	contract := r.contracts[name]
	if contract == nil {
		return execution.Response{}, xerrors.Errorf("unknown contract '%s'", name)
	}

	promCalls.Inc()

	res, err := contract.Reply(prefixed.NewSnapshot(name, snap), reply)
	if err != nil {
		promRejections.Inc()

		r.logger.Warn().
			Str("contract", name).
			Uint64("tag", uint64(reply.Tag)).
			Err(err).
			Msg("callback rejected")

		return execution.Response{}, xerrors.Errorf("contract '%s': %w", name, err)
	}

	return res, nil
}
