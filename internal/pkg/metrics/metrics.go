package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 一轮对话的结局标签
const (
	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
	OutcomeUploadError     = "upload_error"
	OutcomeCompletionError = "completion_error"
)

var (
	// RequestsTotal HTTP 请求计数
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatbox",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration HTTP 请求耗时
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatbox",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	// TurnsTotal 对话轮次计数（按结局）
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatbox",
			Name:      "turns_total",
			Help:      "Total chat turns by outcome",
		},
		[]string{"outcome"},
	)

	// AttachmentUploadsTotal 附件侧通道上传计数
	AttachmentUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatbox",
			Name:      "attachment_uploads_total",
			Help:      "Total attachment uploads to the hosted storage side-channel",
		},
		[]string{"kind", "status"},
	)

	// CompletionDuration 托管补全调用耗时
	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "chatbox",
			Name:      "completion_duration_seconds",
			Help:      "Hosted completion call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)
)

// RecordRequest 记录一次 HTTP 请求
func RecordRequest(method, path, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, path, status).Inc()
	RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordTurn 记录一轮对话的结局
func RecordTurn(outcome string) {
	TurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordUpload 记录一次附件侧通道上传
func RecordUpload(kind, status string) {
	AttachmentUploadsTotal.WithLabelValues(kind, status).Inc()
}

// ObserveCompletion 记录补全调用耗时
func ObserveCompletion(d time.Duration) {
	CompletionDuration.Observe(d.Seconds())
}
