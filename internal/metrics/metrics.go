// Package metrics собирает и публикует метрики Prometheus сервиса студии.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы операций для меток.
const (
	OutcomeCreated  = "created"
	OutcomeExisting = "existing"
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeDropped  = "undeliverable"
)

// Collector интерфейс сбора метрик, который используют сервисы.
type Collector interface {
	RecordRegistration(role, outcome string)
	RecordVerification(outcome string)
	RecordNotification(provider, outcome string)
	RecordReservation(action string)
}

// PrometheusCollector реализация Collector на счётчиках Prometheus.
type PrometheusCollector struct {
	registrations *prometheus.CounterVec
	verifications *prometheus.CounterVec
	notifications *prometheus.CounterVec
	reservations  *prometheus.CounterVec
}

// NewCollector создаёт счётчики и регистрирует их в reg.
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminstudio_registrations_total",
			Help: "Регистрации профилей по роли и исходу",
		}, []string{"role", "outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminstudio_verifications_total",
			Help: "Проверки кодов подтверждения по исходу",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminstudio_notifications_total",
			Help: "Попытки доставки уведомлений по провайдеру и исходу",
		}, []string{"provider", "outcome"}),
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminstudio_reservations_total",
			Help: "Операции с бронированиями",
		}, []string{"action"}),
	}

	reg.MustRegister(
		c.registrations,
		c.verifications,
		c.notifications,
		c.reservations,
	)
	return c
}

// RecordRegistration учитывает регистрацию профиля.
func (c *PrometheusCollector) RecordRegistration(role, outcome string) {
	c.registrations.WithLabelValues(role, outcome).Inc()
}

// RecordVerification учитывает проверку кода.
func (c *PrometheusCollector) RecordVerification(outcome string) {
	c.verifications.WithLabelValues(outcome).Inc()
}

// RecordNotification учитывает попытку доставки.
func (c *PrometheusCollector) RecordNotification(provider, outcome string) {
	c.notifications.WithLabelValues(provider, outcome).Inc()
}

// RecordReservation учитывает операцию с бронированием.
func (c *PrometheusCollector) RecordReservation(action string) {
	c.reservations.WithLabelValues(action).Inc()
}

// Handler отдаёт метрики из gatherer в формате Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop Collector, который ничего не записывает.
type Nop struct{}

func (Nop) RecordRegistration(string, string) {}
func (Nop) RecordVerification(string)         {}
func (Nop) RecordNotification(string, string) {}
func (Nop) RecordReservation(string)          {}
