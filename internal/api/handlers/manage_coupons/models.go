package manage_coupons

// SetActiveRequest HTTP request model для включения и отключения купона
type SetActiveRequest struct {
	IsActive *bool `json:"isActive"`
}
