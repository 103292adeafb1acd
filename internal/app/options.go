package app

import "github.com/okian/leadscore/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource overrides the CRM lead source.
func WithSource(src LeadSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithNotifier overrides the alert notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}
