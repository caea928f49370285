package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SessionCodesIssued 已签发的签到码总数（按课程类型）
var SessionCodesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "attendance",
	Name:      "session_codes_issued_total",
	Help:      "Total session codes issued by teachers.",
}, []string{"session_type"})

// ScanResults 学生提交签到码的结果计数
// result: accepted | invalid | expired
var ScanResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "attendance",
	Name:      "scan_results_total",
	Help:      "Outcome of student code submissions.",
}, []string{"result"})
