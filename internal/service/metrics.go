package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// webhook_events_total conta os eventos recebidos por tipo e resultado
	// (rejected, invalid, ignored, handled, failed).
	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Número de eventos de webhook recebidos.",
		},
		[]string{"type", "outcome"},
	)

	collaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_failures_total",
			Help: "Falhas dos colaboradores externos acionados pelo webhook.",
		},
		[]string{"collaborator"},
	)

	agreementsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agreements_recorded_total",
			Help: "Aceites de termos registrados.",
		},
	)
)
