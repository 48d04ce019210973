package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsboard_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newsboard_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	upvoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsboard_upvote_toggles_total",
		Help: "Upvote toggles by target kind and resulting direction.",
	}, []string{"target", "direction"})

	commentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsboard_comments_created_total",
		Help: "Comments created, split into root comments and replies.",
	}, []string{"kind"})

	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsboard_posts_created_total",
		Help: "Posts created.",
	})
)

// Middleware records request counts and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// UpvoteToggled counts one toggle on a "post" or "comment"
func UpvoteToggled(target string, upvoted bool) {
	direction := "down"
	if upvoted {
		direction = "up"
	}
	upvoteToggles.WithLabelValues(target, direction).Inc()
}

// CommentCreated counts a new comment
func CommentCreated(reply bool) {
	kind := "root"
	if reply {
		kind = "reply"
	}
	commentsCreated.WithLabelValues(kind).Inc()
}

// PostCreated counts a new post
func PostCreated() {
	postsCreated.Inc()
}
