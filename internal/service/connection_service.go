package service

import (
	"context"
	"errors"
	"time"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/dto"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/introspect"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/metrics"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/repository"
)

// Common connection errors
var (
	ErrUnsupportedDialect = errors.New("unsupported connection dialect")
	ErrMissingDSN         = errors.New("connection has no dsn configured")
)

// defaultTestTimeout bounds a reachability probe when the config does not
// set one.
const defaultTestTimeout = 10 * time.Second

// ConnectionService handles registered database connections / Gère les connexions de base enregistrées
type ConnectionService struct {
	*EntityService[domain.Connection, dto.ConnectionCreate, dto.ConnectionUpdate, dto.ConnectionResponse]
	testTimeout time.Duration
	open        func(dialect, dsn string) (introspect.Introspector, error)
}

// NewConnectionService creates a connection service instance / Crée une instance de service de connexion
func NewConnectionService(repo *repository.Repository[domain.Connection], m *metrics.Metrics, testTimeout time.Duration) *ConnectionService {
	if testTimeout <= 0 {
		testTimeout = defaultTestTimeout
	}
	return &ConnectionService{
		EntityService: NewEntityService[domain.Connection, dto.ConnectionCreate, dto.ConnectionUpdate](repo, dto.ConnectionToDTO, m),
		testTimeout:   testTimeout,
		open:          introspect.Open,
	}
}

// Create rejects dialects no introspector is registered for, so a
// connection that can never be probed or imported is refused up front.
func (s *ConnectionService) Create(ctx context.Context, spec dto.ConnectionCreate, authz *domain.Authorized) (dto.ConnectionResponse, error) {
	if !introspect.Supported(spec.Dialect) {
		return dto.ConnectionResponse{}, ErrUnsupportedDialect
	}
	return s.EntityService.Create(ctx, spec, authz)
}

// Test probes the reachability of a registered connection / Sonde la joignabilité d'une connexion enregistrée
//
// An unreachable target is a normal outcome, reported in the result, not
// an error; errors are reserved for unknown connections and missing
// configuration.
func (s *ConnectionService) Test(ctx context.Context, id uint) (dto.ConnectionTestResult, error) {
	conn, err := s.repo.Get(ctx, id)
	if err != nil {
		s.record("test", err)
		return dto.ConnectionTestResult{}, err
	}
	if conn.DSN == "" {
		s.record("test", ErrMissingDSN)
		return dto.ConnectionTestResult{}, ErrMissingDSN
	}

	result := dto.ConnectionTestResult{ConnectionID: id}

	ctx, cancel := context.WithTimeout(ctx, s.testTimeout)
	defer cancel()

	intr, err := s.open(conn.Dialect, conn.DSN)
	if err != nil {
		result.Error = err.Error()
		s.record("test", nil)
		return result, nil
	}
	defer intr.Close()

	if err := intr.Ping(ctx); err != nil {
		result.Error = err.Error()
		s.record("test", nil)
		return result, nil
	}

	result.Reachable = true
	s.record("test", nil)
	return result, nil
}
