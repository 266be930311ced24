package service

import (
	"context"
	"fmt"
)

// StoreHealthy checks the database connection.
func (s *Service) StoreHealthy(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// UpstreamHealthy checks that the AI responder can be reached.
func (s *Service) UpstreamHealthy(ctx context.Context) error {
	return s.responder.Ping(ctx)
}
