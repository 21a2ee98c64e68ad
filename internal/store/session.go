package store

// The session token lives under a fixed key; absent means logged out.
// Every mutation is written through immediately so a restart restores the
// session.
const sessionKey = "authToken"

// Token returns the persisted session token, if any.
func (s *Store) Token() (string, bool) {
	v, ok, err := s.Get(sessionKey)
	if err != nil || v == "" {
		return "", false
	}
	return v, ok
}

func (s *Store) SetToken(token string) error {
	return s.Set(sessionKey, token)
}

func (s *Store) ClearToken() error {
	return s.Delete(sessionKey)
}
