package services

import "context"

// VaultMonitorSvc runs the periodic reset and low balance sweep.
type VaultMonitorSvc interface {
	// Start launches the sweep in the background, once immediately and then on every tick until ctx is cancelled.
	Start(ctx context.Context)

	// RunOnce sweeps every user with vaults and returns the number of users reset.
	RunOnce(ctx context.Context) int
}
