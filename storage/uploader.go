package storage

import (
	"context"
	"io"
)

// UploadResult описывает загруженный документ положения:
// ключ в бакете, публичный URL и ETag объекта.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader — хранилище документов соревнования (положения о старте).
// Единственная реализация — Cloudflare R2; сервис соревнований получает
// nil, если R2 не сконфигурирован, и отвечает 503 на попытку загрузки.
type FileUploader interface {
	// Upload кладёт документ под ключ вида "announcements/{competitionID}/{filename}".
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetPublicURL строит URL документа от публичного адреса бакета.
	GetPublicURL(key string) string
}
