package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	storagego "github.com/supabase-community/storage-go"
)

// SupabaseStorage wraps the Supabase Storage client for attachment and
// paper-file uploads.
type SupabaseStorage struct {
	client *storagego.Client
	url    string
	bucket string
}

func NewSupabaseStorage(url, serviceRoleKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		client: storagego.NewClient(url+"/storage/v1", serviceRoleKey, nil),
		url:    url,
		bucket: bucket,
	}
}

// UploadFile stores the file under a generated name and returns its public URL.
func (s *SupabaseStorage) UploadFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	objectPath := uuid.New().String() + ext

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	options := storagego.FileOptions{
		ContentType: &contentType,
	}

	if _, err := s.client.UploadFile(s.bucket, objectPath, &buf, options); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.url, s.bucket, objectPath)
	return publicURL, nil
}
