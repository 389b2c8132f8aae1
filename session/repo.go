package session

// KV is the small key-value port a persistence scope is built on. The browser
// original keeps sessions in web storage; here each scope is an injected KV
// so the auth flow and route guard stay testable without a real environment.
type KV interface {
	Put(contextID string, data []byte) error
	// Get returns internal/errors.ErrNotFound when no record exists.
	Get(contextID string) ([]byte, error)
	Delete(contextID string) error
}
