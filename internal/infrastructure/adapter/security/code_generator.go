package security

import (
	"strings"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	"github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/google/uuid"
)

// UUIDCodeGenerator produces random identifiers from UUIDs
type UUIDCodeGenerator struct{}

// NewUUIDCodeGenerator creates a new UUID-backed code generator
func NewUUIDCodeGenerator() core.CodeGenerator {
	return &UUIDCodeGenerator{}
}

// GroupCode returns a short invite code. The truncated keyspace makes codes
// typeable; callers must check for collisions before use.
func (g *UUIDCodeGenerator) GroupCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:entity.GroupCodeLength]
}

// SessionToken returns an unguessable 256-bit session token
func (g *UUIDCodeGenerator) SessionToken() string {
	a := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := strings.ReplaceAll(uuid.NewString(), "-", "")
	return a + b
}

// PhotoName returns an opaque stored file name with the given extension
func (g *UUIDCodeGenerator) PhotoName(extension string) string {
	return uuid.NewString() + extension
}
