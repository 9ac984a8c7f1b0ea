package handlers

// AppHandlers содержит все хэндлеры приложения
type AppHandlers struct {
	PerevalHandler *PerevalHandler
	HealthHandler  *HealthHandler
}
