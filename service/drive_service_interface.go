package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	FileName(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
	ListCatalogFiles(ctx context.Context, folderID string) ([]DriveFile, error)
}
