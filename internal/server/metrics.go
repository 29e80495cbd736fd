package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters, exposed alongside the HTTP metrics at /metrics.
var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_registrations_total",
		Help: "Accounts created since process start.",
	})
	postsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Posts published since process start.",
	})
	commentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Comments added since process start.",
	})
)
