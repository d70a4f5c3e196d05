package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The referential constraints live in association tags, so AutoMigrate only
// emits them when the tags are present. These checks pin the two foreign
// keys the schema depends on.
func TestUserReferencesGroupByCode(t *testing.T) {
	field, ok := reflect.TypeOf(User{}).FieldByName("Group")
	require.True(t, ok, "User model must carry the Group association")

	tag := field.Tag.Get("gorm")
	assert.Contains(t, tag, "foreignKey:GroupCode")
	assert.Contains(t, tag, "references:Code")
}

func TestSavingRecordReferencesUser(t *testing.T) {
	field, ok := reflect.TypeOf(SavingRecord{}).FieldByName("User")
	require.True(t, ok, "SavingRecord model must carry the User association")

	tag := field.Tag.Get("gorm")
	assert.Contains(t, tag, "foreignKey:UserID")
	assert.Contains(t, tag, "references:ID")
}
