// Package metrics defines and registers all custom Prometheus metrics for the
// Sthaniya API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sthaniya"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts completed registrations.
// Label:
//   - provider: "local" or "google"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed account registrations, by auth provider.",
	},
	[]string{"provider"},
)

// LoginsTotal counts successful logins.
// Label:
//   - provider: "local" or "google"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by auth provider.",
	},
	[]string{"provider"},
)

// VerificationCodesSentTotal counts verification codes dispatched by mail.
// Label:
//   - flow: "local" or "google"
var VerificationCodesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_codes_sent_total",
		Help:      "Total number of email verification codes dispatched.",
	},
	[]string{"flow"},
)

// VerificationFailuresTotal counts rejected code submissions.
// Label:
//   - reason: "not_found", "expired", "too_many_attempts", or "mismatch"
var VerificationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_failures_total",
		Help:      "Total number of rejected verification code submissions, by reason.",
	},
	[]string{"reason"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// StoriesCreatedTotal counts newly created stories.
// Label:
//   - category: the story category tag (e.g. "traditional")
var StoriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stories_created_total",
		Help:      "Total number of stories created, by category.",
	},
	[]string{"category"},
)

// StoryLikesTotal counts like requests that reached the store.
var StoryLikesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "story_likes_total",
		Help:      "Total number of story like operations.",
	},
)

// StoryCommentsTotal counts comments appended to stories.
var StoryCommentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "story_comments_total",
		Help:      "Total number of comments appended to stories.",
	},
)

// UploadsCreatedTotal counts anonymous image uploads that were persisted.
var UploadsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_created_total",
		Help:      "Total number of anonymous story uploads persisted.",
	},
)
