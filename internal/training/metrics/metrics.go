package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the training module.
type Metrics struct {
	TransfersExecuted prometheus.Counter
	// TransfersRejected by domain error code.
	TransfersRejected *prometheus.CounterVec
	// RecordsCarried / RecordsDropped count attendance rows per transfer outcome.
	RecordsCarried    prometheus.Counter
	RecordsDropped    *prometheus.CounterVec
	TransferLatency   prometheus.Histogram
	GridBuildLatency  prometheus.Histogram
	GridCacheLookups  *prometheus.CounterVec
	EnrollmentChanges *prometheus.CounterVec
	CheckIns          *prometheus.CounterVec
}

// New registers the training metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TransfersExecuted: f.NewCounter(prometheus.CounterOpts{
			Name: "roster_transfers_executed_total",
			Help: "Participant transfers committed",
		}),
		TransfersRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_transfers_rejected_total",
			Help: "Participant transfers rejected, by error code",
		}, []string{"code"}),
		RecordsCarried: f.NewCounter(prometheus.CounterOpts{
			Name: "roster_transfer_records_carried_total",
			Help: "Attendance records recreated on the target training",
		}),
		RecordsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_transfer_records_dropped_total",
			Help: "Attendance records not carried over, by reason",
		}, []string{"reason"}), // reason: "out_of_range", "collision"
		TransferLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_transfer_duration_seconds",
			Help:    "Duration of transfer execution including the unit of work",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		GridBuildLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_grid_build_duration_seconds",
			Help:    "Duration of attendance grid builds that missed the cache",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		GridCacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_grid_cache_lookups_total",
			Help: "Grid cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"
		EnrollmentChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_enrollment_changes_total",
			Help: "Enrollment mutations by kind",
		}, []string{"kind"}), // kind: "created", "cancelled"
		CheckIns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_check_ins_total",
			Help: "Device check-ins by session",
		}, []string{"session"}),
	}
}

func (m *Metrics) IncTransferExecuted(carried, outOfRange, collisions int) {
	if m == nil {
		return
	}
	m.TransfersExecuted.Inc()
	m.RecordsCarried.Add(float64(carried))
	m.RecordsDropped.WithLabelValues("out_of_range").Add(float64(outOfRange))
	m.RecordsDropped.WithLabelValues("collision").Add(float64(collisions))
}

func (m *Metrics) IncTransferRejected(code string) {
	if m != nil {
		m.TransfersRejected.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) ObserveTransferLatency(d time.Duration) {
	if m != nil {
		m.TransferLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveGridBuild(d time.Duration) {
	if m != nil {
		m.GridBuildLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncGridCache(result string) {
	if m != nil {
		m.GridCacheLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncEnrollment(kind string) {
	if m != nil {
		m.EnrollmentChanges.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncCheckIn(session string) {
	if m != nil {
		m.CheckIns.WithLabelValues(session).Inc()
	}
}
