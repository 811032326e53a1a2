package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/dto"
	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type popularStub struct {
	classes []models.Class
}

func (p popularStub) PopularClasses(ctx context.Context) ([]models.Class, bool, error) {
	return p.classes, false, nil
}

func newExportServiceForTest() *ExportService {
	svc := NewExportService(popularStub{classes: []models.Class{
		{Title: "Go", Name: "Ana", Email: "ana@x.com", Price: 19.5, TotalEnrollment: 5},
		{Title: "SQL", Name: "Ben", Email: "ben@x.com", Price: 0, TotalEnrollment: 3},
	}}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC) }
	return svc
}

func TestExportPopularClassesCSV(t *testing.T) {
	file, err := newExportServiceForTest().PopularClasses(context.Background(), dto.ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "popular_classes_20240201_083000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "rank,title,teacher,email,price,enrollment\n1,Go,Ana,ana@x.com,19.50,5\n2,SQL,Ben,ben@x.com,0.00,3\n", string(file.Body))
}

func TestExportPopularClassesPDF(t *testing.T) {
	file, err := newExportServiceForTest().PopularClasses(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF-")))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := newExportServiceForTest().PopularClasses(context.Background(), "xlsx")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
