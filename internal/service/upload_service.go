package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"Project_Reviews/internal/pkg"

	"github.com/google/uuid"
)

const MaxUploadSize = 10 << 20 // 10MB

var (
	ErrBadFileType  = errors.New("unsupported file type")
	ErrFileTooLarge = errors.New("file too large")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadService 图片上传，落到外部CDN
type UploadService struct {
	uploader pkg.Uploader
}

func NewUploadService(uploader pkg.Uploader) *UploadService {
	return &UploadService{uploader: uploader}
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Upload 文件名随机化后推到CDN，返回可访问URL和用于后续删除的public_id
func (s *UploadService) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return nil, ErrBadFileType
	}
	if size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	name := uuid.NewString() + ext
	url, publicID, err := s.uploader.Upload(ctx, name, io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: url, PublicID: publicID}, nil
}
