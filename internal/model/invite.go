package model

// InviteJob is the pgmq payload asking the mailer to send a referral invite.
type InviteJob struct {
	ReferralID   string `json:"referral_id"`
	ReferrerID   string `json:"referrer_id"`
	RefereeEmail string `json:"referee_email"`
	ReferralCode string `json:"referral_code"`
}
