package transport

type Credential struct {
	Username string
	Password string
}

type CredentialProvider interface {
	Credential() (Credential, bool)
}

type staticCredential struct {
	cred Credential
}

func (s *staticCredential) Credential() (Credential, bool) {
	if len(s.cred.Username) == 0 {
		return Credential{}, false
	}
	return s.cred, true
}

// StaticCredential always yields user and secret, an empty user yields nothing.
func StaticCredential(user string, secret string) CredentialProvider {
	return &staticCredential{cred: Credential{Username: user, Password: secret}}
}
