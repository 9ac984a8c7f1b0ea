package services

import (
	"fstr_backend/internal/email"
	"fstr_backend/internal/metrics"
)

// ServiceContainer содержит все сервисы приложения
type ServiceContainer struct {
	PerevalService PerevalService
	EmailService   email.Provider
	Metrics        *metrics.Metrics
}
