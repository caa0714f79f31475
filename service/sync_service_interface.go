package service

import "context"

// SyncServiceInterface defines the contract for catalog synchronization
type SyncServiceInterface interface {
	SyncCatalog(ctx context.Context) (SyncStats, error)
}
