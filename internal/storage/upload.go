package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader is the narrow contract service packages depend on.
type Uploader interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ObjectKey builds a namespaced object key, preserving the file extension.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
}

// UploadMultipartFile uploads a multipart file header and returns its public URL.
func UploadMultipartFile(
	ctx context.Context,
	uploader Uploader,
	prefix string,
	file *multipart.FileHeader,
) (string, error) {

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return uploader.Upload(ctx, ObjectKey(prefix, file.Filename), f)
}
