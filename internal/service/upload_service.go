package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/zetedec/lanchat/internal/domain"
)

// UploadService stores uploaded binaries under the uploads directory and
// hands back a durable URL plus the ready-to-send tagged content. The sniffed
// media type decides whether the attachment is a voice note or a plain file.
type UploadService struct {
	dir string
}

func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &UploadService{dir: dir}, nil
}

type UploadResult struct {
	FileURL string         `json:"file_url"`
	Content domain.Content `json:"content"`
}

func (s *UploadService) Save(originalName string, r io.Reader) (*UploadResult, error) {
	name := uuid.New().String() + "-" + sanitizeFilename(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("detecting media type: %w", err)
	}

	url := "/uploads/" + name
	content := domain.FileContent(url)
	if strings.HasPrefix(mtype.String(), "audio/") {
		content = domain.VoiceContent(url)
	}

	return &UploadResult{FileURL: url, Content: content}, nil
}

// sanitizeFilename keeps just the base name and replaces anything that could
// leave the uploads directory or break a URL.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}
