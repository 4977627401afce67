package domain

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Identity     Identity
	AccessToken  string
	RefreshToken string
}

// TokenInvalidReason tags why a presented token was refused.
type TokenInvalidReason string

const (
	ReasonSignatureInvalid TokenInvalidReason = "signature_invalid"
	ReasonExpired          TokenInvalidReason = "expired"
	ReasonMalformedClaims  TokenInvalidReason = "malformed_claims"
	ReasonWrongTokenType   TokenInvalidReason = "wrong_token_type"
	ReasonSubjectNotFound  TokenInvalidReason = "subject_not_found"
)

// TokenCheckResult is the structured outcome of a token check. Reason is
// empty when Valid is true.
type TokenCheckResult struct {
	Valid   bool
	Subject string
	Reason  TokenInvalidReason
}
