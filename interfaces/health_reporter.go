package interfaces

// HealthReporter publishes whether the stream manager can currently route anything.
// Implemented by adapters/grpchealth.Server; called from service.statusPublisher after every tick.
//
//go:generate moq -stub -out mock/health_reporter.go -pkg mock . HealthReporter
type HealthReporter interface {
	// SetServing marks the service SERVING when at least one render node is Active.
	SetServing(serving bool)
}
