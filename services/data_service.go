package services

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// DataService wraps the resource endpoints used by the console pages
type DataService struct {
	api    APIClient
	logger *zap.Logger
}

// NewDataService creates a new DataService
func NewDataService(api APIClient, logger *zap.Logger) *DataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataService{api: api, logger: logger}
}

func listQuery(page models.PageRequest, defaultSize int) url.Values {
	return page.Normalize(defaultSize).Values()
}

func withStatus(q url.Values, status string) url.Values {
	if status != "" {
		q.Set("status", status)
	}
	return q
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
