package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"shopsmart/repository"
)

// catalogMimeTypes are the Drive file types that can hold a catalog document.
var catalogMimeTypes = map[string]bool{
	"application/json":   true,
	"application/x-yaml": true,
	"application/yaml":   true,
	"text/yaml":          true,
	"text/x-yaml":        true,
	"text/plain":         true,
}

// DriveFile describes a catalog document stored in Google Drive.
type DriveFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
	logger *zap.Logger
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string, logger *zap.Logger) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return NewDriveServiceWithClient(driveService, logger), nil
}

// NewDriveServiceWithClient wraps an existing Drive client.
func NewDriveServiceWithClient(client *drive.Service, logger *zap.Logger) *DriveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DriveService{client: client, logger: logger}
}

// Ensure DriveService implements the interfaces it serves
var (
	_ DriveServiceInterface                = (*DriveService)(nil)
	_ repository.DriveFileFetcherInterface = (*DriveService)(nil)
)

// FileName returns the name of a Drive file.
func (ds *DriveService) FileName(ctx context.Context, fileID string) (string, error) {
	f, err := ds.client.Files.Get(fileID).Fields("id, name").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return f.Name, nil
}

// Download returns the content of a Drive file.
func (ds *DriveService) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}

// ListCatalogFiles lists the JSON and YAML documents in a Drive folder.
func (ds *DriveService) ListCatalogFiles(ctx context.Context, folderID string) ([]DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var files []DriveFile
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, f := range r.Files {
			if !isCatalogFile(f.Name, f.MimeType) {
				ds.logger.Debug("Skipping non-catalog Drive file", zap.String("name", f.Name))
				continue
			}
			files = append(files, DriveFile{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	ds.logger.Info("📦 Catalog files found in Drive", zap.String("folder", folderID), zap.Int("files", len(files)))
	return files, nil
}

func isCatalogFile(name, mimeType string) bool {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".json") && !strings.HasSuffix(lower, ".yaml") && !strings.HasSuffix(lower, ".yml") {
		return false
	}
	return catalogMimeTypes[strings.ToLower(mimeType)]
}
