package services

// ServiceContainer holds every service in the application.
type ServiceContainer struct {
	PaymentService      PaymentService
	SubscriptionService SubscriptionService
	AnalyticsService    AnalyticsService
}
