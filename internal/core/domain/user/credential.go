package user

type SessionCredential string

func (c SessionCredential) String() string {
	return "***"
}

type CredentialIssuer interface {
	IssueCredential(id ID) (SessionCredential, error)
}

// CredentialVerifier returns the subject of a valid credential or
// ErrInvalidCredentials.
type CredentialVerifier interface {
	VerifyCredential(credential SessionCredential) (ID, error)
}
