package health

import "context"

// Checker reports whether one backing dependency (the catalog
// database, for now) is usable.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase tells probes whether the service can take traffic.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

// NewService combines checkers; the service is ready only when every
// one of them passes.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return err
		}
	}
	return nil
}
