package entity

import (
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
)

// GroupCodeLength is the length of the opaque invite code shared between members
const GroupCodeLength = 8

// DefaultGroupName is used when a group is created without an explicit name
const DefaultGroupName = "New savings plan"

// Group represents a shared savings plan that users join via an invite code
type Group struct {
	ID   uint64 // Unique identifier for the group
	Code string // 8-character opaque invite code (unique)
	Name string // Display name, mutable by any member
}

// NewGroup creates a new group with the given code and name.
// An empty name falls back to DefaultGroupName.
func NewGroup(code, name string) (*Group, error) {
	if err := ValidateGroupCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultGroupName
	}
	return &Group{
		Code: code,
		Name: name,
	}, nil
}

// Rename updates the display name. Empty names are ignored,
// matching the behavior of the group-rename form.
func (g *Group) Rename(name string) {
	if name == "" {
		return
	}
	g.Name = name
}

// ValidateGroupCode checks that a code has the expected invite code shape
func ValidateGroupCode(code string) error {
	if len(code) != GroupCodeLength {
		return errs.ErrInvalidGroupCode
	}
	return nil
}
