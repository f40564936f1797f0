package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/fundme/internal/domain"
)

// Anvil operations
const (
	AnvilStart    = "start"
	AnvilStop     = "stop"
	AnvilRestart  = "restart"
	AnvilStatus   = "status"
	AnvilLogs     = "logs"
	AnvilSnapshot = "snapshot"
	AnvilRevert   = "revert"
)

// ManageAnvil handles anvil node management operations
type ManageAnvil struct {
	anvilManager AnvilManager
	progress     ProgressSink
}

// NewManageAnvil creates a new anvil management use case
func NewManageAnvil(anvilManager AnvilManager, progress ProgressSink) *ManageAnvil {
	return &ManageAnvil{
		anvilManager: anvilManager,
		progress:     progress,
	}
}

// ManageAnvilParams contains parameters for anvil operations
type ManageAnvilParams struct {
	Operation  string
	Name       string
	Port       string
	ChainID    string
	SnapshotID string // for revert
}

// ManageAnvilResult contains the result of anvil operations
type ManageAnvilResult struct {
	Operation  string
	Instance   *domain.AnvilInstance
	Status     *domain.AnvilStatus
	SnapshotID string
	Success    bool
	Message    string
}

// Execute performs the anvil management operation
func (m *ManageAnvil) Execute(ctx context.Context, params ManageAnvilParams) (*ManageAnvilResult, error) {
	instance := &domain.AnvilInstance{
		Name:    params.Name,
		Port:    params.Port,
		ChainID: params.ChainID,
	}

	switch params.Operation {
	case AnvilStart:
		return m.start(ctx, instance)
	case AnvilStop:
		return m.stop(ctx, instance)
	case AnvilRestart:
		return m.restart(ctx, instance)
	case AnvilStatus, AnvilLogs:
		return m.status(ctx, instance, params.Operation)
	case AnvilSnapshot:
		return m.snapshot(ctx, instance)
	case AnvilRevert:
		return m.revert(ctx, instance, params.SnapshotID)
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

func (m *ManageAnvil) start(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("🔨 Starting local anvil node '%s' on port %s...", instance.Name, instance.Port))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("anvil '%s' is already running (PID %d)", instance.Name, status.PID)
	}

	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageAnvilResult{
		Operation: AnvilStart,
		Instance:  instance,
		Status:    status,
		Success:   true,
		Message:   fmt.Sprintf("Anvil '%s' started with PID %d", instance.Name, status.PID),
	}, nil
}

func (m *ManageAnvil) stop(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("🛑 Stopping anvil '%s'...", instance.Name))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return &ManageAnvilResult{
			Operation: AnvilStop,
			Instance:  instance,
			Success:   true,
			Message:   fmt.Sprintf("Anvil '%s' is not running", instance.Name),
		}, nil
	}

	if err := m.anvilManager.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop anvil: %w", err)
	}

	return &ManageAnvilResult{
		Operation: AnvilStop,
		Instance:  instance,
		Success:   true,
		Message:   "Anvil stopped",
	}, nil
}

func (m *ManageAnvil) restart(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("🔄 Restarting anvil '%s'...", instance.Name))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		if err := m.anvilManager.Stop(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to stop anvil: %w", err)
		}
	}

	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after restart: %w", err)
	}

	return &ManageAnvilResult{
		Operation: AnvilRestart,
		Instance:  instance,
		Status:    status,
		Success:   true,
		Message:   fmt.Sprintf("Anvil '%s' restarted with PID %d", instance.Name, status.PID),
	}, nil
}

// status also serves logs; streaming is left to the caller
func (m *ManageAnvil) status(ctx context.Context, instance *domain.AnvilInstance, operation string) (*ManageAnvilResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return &ManageAnvilResult{
		Operation: operation,
		Instance:  instance,
		Status:    status,
		Success:   true,
	}, nil
}

func (m *ManageAnvil) snapshot(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	status, err := m.runningStatus(ctx, instance)
	if err != nil {
		return nil, err
	}

	id, err := m.anvilManager.TakeSnapshot(ctx, status.RPCURL)
	if err != nil {
		return nil, err
	}

	return &ManageAnvilResult{
		Operation:  AnvilSnapshot,
		Instance:   instance,
		Status:     status,
		SnapshotID: id,
		Success:    true,
		Message:    fmt.Sprintf("Snapshot %s taken", id),
	}, nil
}

func (m *ManageAnvil) revert(ctx context.Context, instance *domain.AnvilInstance, snapshotID string) (*ManageAnvilResult, error) {
	if snapshotID == "" {
		return nil, fmt.Errorf("snapshot ID is required")
	}

	status, err := m.runningStatus(ctx, instance)
	if err != nil {
		return nil, err
	}

	if err := m.anvilManager.RevertSnapshot(ctx, status.RPCURL, snapshotID); err != nil {
		return nil, err
	}

	return &ManageAnvilResult{
		Operation:  AnvilRevert,
		Instance:   instance,
		Status:     status,
		SnapshotID: snapshotID,
		Success:    true,
		Message:    fmt.Sprintf("Reverted to snapshot %s", snapshotID),
	}, nil
}

func (m *ManageAnvil) runningStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	if !status.RPCHealthy {
		return nil, fmt.Errorf("anvil '%s' is not reachable on port %s", instance.Name, instance.Port)
	}
	return status, nil
}
