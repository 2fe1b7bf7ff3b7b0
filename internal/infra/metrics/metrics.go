package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconcileTotal — сколько раз пересобирали ростер с нуля.
	ReconcileTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubstaff_reconcile_total",
		Help: "Total roster reconciliations performed.",
	})

	// InvitationFetchFailures — клубы, по которым не удалось получить приглашения
	// (не фатально: клуб считается пустым).
	InvitationFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubstaff_invitation_fetch_failures_total",
		Help: "Per-club invitation fetches that failed and were treated as empty.",
	})

	MutationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubstaff_backend_mutation_failures_total",
		Help: "Backend write calls (invite, role change, removal) that failed.",
	})
)
