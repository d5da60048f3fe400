package handlers

import (
	"taskboard-api/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService     services.AuthService
	TaskService     services.TaskService
	TimelineService services.TimelineService
	JWTSecret       string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler      *AuthHandler
	TaskHandler      *TaskHandler
	TimelineHandler  *TimelineHandler
	AnalyticsHandler *AnalyticsHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:      NewAuthHandler(services.AuthService),
		TaskHandler:      NewTaskHandler(services.TaskService),
		TimelineHandler:  NewTimelineHandler(services.TimelineService),
		AnalyticsHandler: NewAnalyticsHandler(services.TaskService),
	}
}
