package services

// EventPublisher is the fire-and-forget sink for catalog change events.
// Publish failures are logged by the caller and never fail the request.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
