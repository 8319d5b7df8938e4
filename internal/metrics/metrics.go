// Package metrics считает нажатия и ошибки по дорожкам.
// Итог выводится в лог при выходе и, если задан файл, записывается
// в текстовом формате Prometheus (для textfile-коллектора).
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"autoplayer/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "autoplayer"

// LaneMetrics: счетчики всех дорожек на собственном реестре
type LaneMetrics struct {
	registry     *prometheus.Registry
	presses      *prometheus.CounterVec
	releases     *prometheus.CounterVec
	sampleErrors *prometheus.CounterVec
	injectErrors *prometheus.CounterVec
}

// New создает счетчики и регистрирует их
func New() *LaneMetrics {
	newVec := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{"lane", "key"})
	}

	m := &LaneMetrics{
		registry:     prometheus.NewRegistry(),
		presses:      newVec("key_presses_total", "Key down events injected per lane."),
		releases:     newVec("key_releases_total", "Key up events injected per lane."),
		sampleErrors: newVec("sample_errors_total", "Failed pixel samples per lane."),
		injectErrors: newVec("inject_errors_total", "Failed key injections per lane."),
	}
	m.registry.MustRegister(m.presses, m.releases, m.sampleErrors, m.injectErrors)
	return m
}

// ForLane возвращает счетчики одной дорожки
func (m *LaneMetrics) ForLane(index int, key string) LaneCounters {
	labels := prometheus.Labels{"lane": strconv.Itoa(index), "key": key}
	return LaneCounters{
		presses:      m.presses.With(labels),
		releases:     m.releases.With(labels),
		sampleErrors: m.sampleErrors.With(labels),
		injectErrors: m.injectErrors.With(labels),
	}
}

// Gather возвращает снимок всех счетчиков
func (m *LaneMetrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// Report пишет в лог по строке на дорожку
func (m *LaneMetrics) Report(loggerManager *logger.LoggerManager) error {
	families, err := m.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	type row struct {
		key    string
		values map[string]float64
	}
	rows := map[string]*row{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var lane, key string
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "lane":
					lane = label.GetValue()
				case "key":
					key = label.GetValue()
				}
			}
			r, ok := rows[lane]
			if !ok {
				r = &row{key: key, values: map[string]float64{}}
				rows[lane] = r
			}
			r.values[family.GetName()] = metric.GetCounter().GetValue()
		}
	}

	lanes := make([]string, 0, len(rows))
	for lane := range rows {
		lanes = append(lanes, lane)
	}
	sort.Slice(lanes, func(i, j int) bool {
		a, _ := strconv.Atoi(lanes[i])
		b, _ := strconv.Atoi(lanes[j])
		return a < b
	})

	for _, lane := range lanes {
		r := rows[lane]
		loggerManager.Info("[STATS] lane %s (%s): presses=%.0f releases=%.0f sample_errors=%.0f inject_errors=%.0f",
			lane, r.key,
			r.values[namespace+"_key_presses_total"],
			r.values[namespace+"_key_releases_total"],
			r.values[namespace+"_sample_errors_total"],
			r.values[namespace+"_inject_errors_total"])
	}
	return nil
}

// WriteTextfile записывает счетчики в текстовом формате Prometheus.
// Файл заменяется целиком через временный.
func (m *LaneMetrics) WriteTextfile(path string) error {
	families, err := m.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(tmp, family); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to encode %s: %w", family.GetName(), err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// LaneCounters: счетчики одной дорожки. Нулевое значение ничего не считает.
type LaneCounters struct {
	presses      prometheus.Counter
	releases     prometheus.Counter
	sampleErrors prometheus.Counter
	injectErrors prometheus.Counter
}

func (c LaneCounters) Pressed() {
	if c.presses != nil {
		c.presses.Inc()
	}
}

func (c LaneCounters) Released() {
	if c.releases != nil {
		c.releases.Inc()
	}
}

func (c LaneCounters) SampleFailed() {
	if c.sampleErrors != nil {
		c.sampleErrors.Inc()
	}
}

func (c LaneCounters) InjectFailed() {
	if c.injectErrors != nil {
		c.injectErrors.Inc()
	}
}
