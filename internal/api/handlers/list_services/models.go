package list_services

import "github.com/m04kA/SMC-SalonService/internal/domain"

// ServiceResponse HTTP response model услуги каталога
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           string `json:"price"`
	IsActive        bool   `json:"isActive"`
}

// FromDomainServices конвертирует список услуг в HTTP response
func FromDomainServices(services []*domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price.StringFixed(2),
			IsActive:        s.IsActive,
		})
	}
	return result
}
