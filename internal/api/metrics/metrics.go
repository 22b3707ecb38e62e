// Package metrics defines the custom Prometheus metrics for the admin panel
// API. It is the single source of truth for metric names, labels and help
// strings; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adminpanel"

// AuthAttemptsTotal counts authentication operations by outcome.
// Labels:
//   - op: "login" or "register"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and registration attempts, by outcome.",
	},
	[]string{"op", "result"},
)

// TokensRevokedTotal counts tokens placed on the denylist via logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of bearer tokens revoked before expiry.",
	},
)

// RevokedTokenRejectionsTotal counts requests rejected because the presented
// token's jti was on the denylist.
var RevokedTokenRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revoked_token_rejections_total",
		Help:      "Total number of requests rejected with a revoked token.",
	},
)

// UserMutationsTotal counts admin mutations on the user collection.
// Label:
//   - op: "update" or "delete"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of admin update and delete operations on users.",
	},
	[]string{"op"},
)
