package globals

// Context keys
type ContextKey string

// EmailKey carries the token-verified email of the caller. It is set by
// middleware.Gate.Authenticate and is the only identity downstream
// handlers and gates may trust.
const EmailKey ContextKey = "email"
