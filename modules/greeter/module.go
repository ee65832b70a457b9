package greeter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/bootkernel/internal/module"
)

// ServiceName is the container key the greeter is registered under.
const ServiceName = "greeter"

// DefaultGreeting is used when the configuration has no "greeting" key.
const DefaultGreeting = "Hello world!"

// Service answers every request with a configured greeting.
type Service struct {
	greeting string
}

// NewService returns a Service that greets with greeting.
func NewService(greeting string) *Service {
	return &Service{greeting: greeting}
}

// Greet returns the greeting.
func (s *Service) Greet() string {
	return s.greeting
}

// Module implements module.Builder for this package.
type Module struct{}

// ModuleName implements module.Namer.
func (m *Module) ModuleName() string { return "greeter" }

// Build registers the greeter service.
func (m *Module) Build(ctx context.Context, host module.Host) error {
	greeting := host.Configuration().String("greeting", DefaultGreeting)
	if strings.TrimSpace(greeting) == "" {
		return errors.New("greeting must not be empty")
	}
	if err := host.Container().Set(ServiceName, NewService(greeting)); err != nil {
		return fmt.Errorf("register greeter: %w", err)
	}
	return nil
}
