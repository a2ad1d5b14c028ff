package account

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

type SessionTokenIssuer interface {
	IssueToken(a Account) (SessionToken, error)
}

// SessionTokenParser returns the ID of the account the token was issued for.
// Expired, malformed and forged tokens yield ErrInvalidSessionToken.
type SessionTokenParser interface {
	ParseToken(token SessionToken) (ID, error)
}
