package operation

import "tripbudget/internal/api/v1/dto"

type ListPacksInput struct{}

type ListPacksOutput struct {
	Body []dto.CreditPackDTO `json:"body"`
}

type CreateCheckoutInput struct {
	Body dto.CheckoutRequestDTO `json:"body"`
}

type CreateCheckoutOutput struct {
	Body dto.CheckoutResponseDTO `json:"body"`
}

type ListPurchasesInput struct{}

type ListPurchasesOutput struct {
	Body []dto.PurchaseDTO `json:"body"`
}
