package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"pathlab/models"
	"pathlab/services/storage"
)

// Publisher makes a rendered report reachable and returns its URL.
type Publisher interface {
	Publish(ctx context.Context, appt models.Appointment, html []byte) (string, error)
}

// LinkPublisher points at the API's own report endpoint, which renders on
// demand. Nothing is uploaded.
type LinkPublisher struct {
	BaseURL string
}

func (p LinkPublisher) Publish(_ context.Context, appt models.Appointment, _ []byte) (string, error) {
	return strings.TrimRight(p.BaseURL, "/") + "/api/appointments/" + appt.ID + "/report", nil
}

// CloudinaryPublisher uploads the rendered HTML as a raw asset.
type CloudinaryPublisher struct {
	Storage storage.StorageService
	Folder  string
}

func (p CloudinaryPublisher) Publish(ctx context.Context, appt models.Appointment, html []byte) (string, error) {
	folder := p.Folder
	if folder == "" {
		folder = "reports"
	}
	url, err := p.Storage.UploadRaw(ctx, bytes.NewReader(html), folder, appt.ID+".html")
	if err != nil {
		return "", fmt.Errorf("publish report %s: %w", appt.ID, err)
	}
	return url, nil
}

// Service renders and publishes reports.
type Service struct {
	Renderer  *Renderer
	Publisher Publisher
	Now       func() time.Time
}

// Publish renders appt and returns the published URL.
func (s *Service) Publish(ctx context.Context, appt models.Appointment) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, appt, now()); err != nil {
		return "", err
	}
	return s.Publisher.Publish(ctx, appt, buf.Bytes())
}
