package operation

import "tripbudget/internal/api/v1/dto"

// Referral Operations

type CreateReferralInput struct {
	Body *dto.CreateReferralRequestDTO `json:"body" required:"false"`
}

type CreateReferralOutput struct {
	Body dto.ReferralResponseDTO `json:"body"`
}

type ListReferralsInput struct {
	Limit  int `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Number of referrals to return"`
	Offset int `query:"offset" default:"0" minimum:"0" doc:"Offset for pagination"`
}

type ListReferralsOutput struct {
	Body dto.ReferralListResponseDTO `json:"body"`
}

type RedeemReferralInput struct {
	Body dto.RedeemReferralRequestDTO `json:"body"`
}

type RedeemReferralOutput struct {
	Body dto.RedeemReferralResponseDTO `json:"body"`
}
