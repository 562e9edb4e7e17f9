package handlers

// AppHandlers holds every handler in the application.
type AppHandlers struct {
	PaymentHandler      *PaymentHandler
	SubscriptionHandler *SubscriptionHandler
	AnalyticsHandler    *AnalyticsHandler
}
