package repository

const tokenKey = "auth_token.v1"

// TokenRepository persists the bearer token between launches. Satisfies
// api.CredentialStore.
type TokenRepository struct {
	Store *Store
}

func NewTokenRepository(store *Store) *TokenRepository {
	return &TokenRepository{Store: store}
}

func (r *TokenRepository) Token() (string, error) {
	raw, ok, err := r.Store.Get(tokenKey)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

func (r *TokenRepository) Set(token string) error {
	return r.Store.Put(tokenKey, []byte(token))
}

func (r *TokenRepository) Clear() error {
	return r.Store.Delete(tokenKey)
}
