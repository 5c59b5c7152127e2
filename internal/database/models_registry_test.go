package database

import (
	"testing"

	modelspkg "estately/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentModels_ReferencedTablesFirst(t *testing.T) {
	got := PersistentModels()
	require.Len(t, got, 4)

	_, ok := got[0].(*modelspkg.User)
	assert.True(t, ok, "users must migrate before the tables referencing them")
	_, ok = got[1].(*modelspkg.Property)
	assert.True(t, ok, "properties must migrate before inquiries and wishlists")
}
