package dto

type HealthResponseDTO struct {
	Status string `json:"status"`
}
