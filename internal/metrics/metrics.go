// internal/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/rdz-bridge/internal/state"
)

var (
	pollCycles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rdz_poll_cycles_total",
		Help: "Completed poll cycles, successful or not.",
	})
	pollFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rdz_poll_failures_total",
		Help: "Poll cycles aborted without publishing a snapshot.",
	})
	pollDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rdz_poll_duration_seconds",
		Help: "Duration of the most recent poll cycle.",
	})
	syncFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rdz_sync_write_failures_total",
		Help: "Failed linked-setpoint propagation writes.",
	})

	outsideTemp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rdz_outside_temperature_celsius",
		Help: "Controller outside temperature sensor.",
	})
	season = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rdz_season_summer",
		Help: "1 when the controller is in summer mode, 0 in winter.",
	})
	zoneTemp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rdz_zone_temperature_celsius",
		Help: "Current zone temperature. Absent zones have no sensor.",
	}, []string{"zone"})
	zoneHumidity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rdz_zone_humidity_percent",
		Help: "Current zone relative humidity.",
	}, []string{"zone"})
	zoneActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rdz_zone_active",
		Help: "1 when the zone is actively heating or cooling.",
	}, []string{"zone"})
	pumpActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rdz_pump_active",
		Help: "1 when the system pump is running.",
	}, []string{"system"})
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(
		pollCycles,
		pollFailures,
		pollDuration,
		syncFailures,
		outsideTemp,
		season,
		zoneTemp,
		zoneHumidity,
		zoneActive,
		pumpActive,
	)
}

// SyncWriteFailed counts one failed propagation write.
func SyncWriteFailed() {
	syncFailures.Inc()
}

// ObserveCycle updates all collectors after a poll cycle.
func ObserveCycle(snap *state.Snapshot, err error, d time.Duration) {
	pollCycles.Inc()
	pollDuration.Set(d.Seconds())

	if err != nil {
		pollFailures.Inc()
		return
	}

	outsideTemp.Set(snap.OutsideTemp)
	if snap.Summer {
		season.Set(1)
	} else {
		season.Set(0)
	}

	// Zones without a sensor are removed rather than reported as zero.
	zoneTemp.Reset()
	for id, v := range snap.Temperatures {
		zoneTemp.WithLabelValues(strconv.Itoa(id)).Set(v)
	}
	for id, v := range snap.Humidity {
		zoneHumidity.WithLabelValues(strconv.Itoa(id)).Set(v)
	}
	for id, on := range snap.ZoneActivity {
		zoneActive.WithLabelValues(strconv.Itoa(id)).Set(boolGauge(on))
	}
	for id, on := range snap.PumpActive {
		pumpActive.WithLabelValues(strconv.Itoa(id)).Set(boolGauge(on))
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
