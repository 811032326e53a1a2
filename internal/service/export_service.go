package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/dto"
	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/export"
)

type popularClassSource interface {
	PopularClasses(ctx context.Context) ([]models.Class, bool, error)
}

type renderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	ContentType() string
	Extension() string
}

var popularHeaders = []string{"rank", "title", "teacher", "email", "price", "enrollment"}

// ExportService renders report views as downloadable files.
type ExportService struct {
	reports   popularClassSource
	renderers map[dto.ExportFormat]renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(reports popularClassSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports: reports,
		renderers: map[dto.ExportFormat]renderer{
			dto.ExportFormatCSV: export.NewCSVExporter(),
			dto.ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// PopularClasses renders the popular classes view in format.
func (s *ExportService) PopularClasses(ctx context.Context, format dto.ExportFormat) (*dto.ExportFile, error) {
	r, ok := s.renderers[dto.ExportFormat(strings.ToLower(string(format)))]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	classes, _, err := s.reports.PopularClasses(ctx)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: popularHeaders, Rows: make([]map[string]string, 0, len(classes))}
	for i, c := range classes {
		data.Rows = append(data.Rows, map[string]string{
			"rank":       strconv.Itoa(i + 1),
			"title":      c.Title,
			"teacher":    c.Name,
			"email":      c.Email,
			"price":      strconv.FormatFloat(c.Price, 'f', 2, 64),
			"enrollment": strconv.FormatInt(c.TotalEnrollment, 10),
		})
	}

	body, err := r.Render(data, "Popular classes")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}

	filename := fmt.Sprintf("popular_classes_%s.%s", s.now().UTC().Format("20060102_150405"), r.Extension())
	s.logger.Debug("report exported", zap.String("file", filename), zap.Int("rows", len(data.Rows)))
	return &dto.ExportFile{Filename: filename, ContentType: r.ContentType(), Body: body}, nil
}
