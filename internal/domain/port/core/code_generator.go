package core

// CodeGenerator produces opaque identifiers used outside the database:
// group invite codes, session tokens and stored photo names.
// Generated values are random; uniqueness is still enforced by the store.
type CodeGenerator interface {
	// GroupCode returns an 8-character opaque invite code
	GroupCode() string
	// SessionToken returns a token suitable for a session cookie
	SessionToken() string
	// PhotoName returns a stored filename for an uploaded photo,
	// independent of the record it belongs to
	PhotoName(extension string) string
}
