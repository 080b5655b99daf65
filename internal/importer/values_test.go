package importer_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueResolver(t *testing.T) {
	edeka := uuid.New()
	groceries := uuid.New()

	resolver, err := importer.NewValueResolver([]models.ValueMapping{
		{SourceValue: "EDEKA MARKT 1234", TargetType: models.TargetCounterparty, TargetID: edeka},
		{SourceValue: "EDEKA MARKT 1234", TargetType: models.TargetCategory, TargetID: groceries},
	})
	require.NoError(t, err)

	id, ok := resolver.Resolve(models.TargetCounterparty, "EDEKA MARKT 1234")
	assert.True(t, ok)
	assert.Equal(t, edeka, id)

	id, ok = resolver.Resolve(models.TargetCategory, "EDEKA MARKT 1234")
	assert.True(t, ok)
	assert.Equal(t, groceries, id)

	// Matching is exact and case sensitive
	_, ok = resolver.Resolve(models.TargetCounterparty, "edeka markt 1234")
	assert.False(t, ok)

	_, ok = resolver.Resolve(models.TargetTag, "EDEKA MARKT 1234")
	assert.False(t, ok)
}

func TestValueResolverConflict(t *testing.T) {
	target := uuid.New()

	_, err := importer.NewValueResolver([]models.ValueMapping{
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: target},
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: uuid.New()},
	})
	assert.ErrorIs(t, err, importer.ErrConflictingMapping)

	// Exact duplicates are not a conflict, they cannot change the result
	_, err = importer.NewValueResolver([]models.ValueMapping{
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: target},
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: target},
	})
	assert.NoError(t, err)
}

// TestValueResolverMerge verifies that the job's own mappings win over
// merged profile mappings.
func TestValueResolverMerge(t *testing.T) {
	jobTarget := uuid.New()
	profileTarget := uuid.New()
	profileOnly := uuid.New()

	resolver, err := importer.NewValueResolver([]models.ValueMapping{
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: jobTarget},
	})
	require.NoError(t, err)

	err = resolver.Merge([]models.ValueMapping{
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: profileTarget},
		{SourceValue: "ALDI", TargetType: models.TargetCounterparty, TargetID: profileOnly},
	})
	require.NoError(t, err)

	id, ok := resolver.Resolve(models.TargetCounterparty, "REWE")
	assert.True(t, ok)
	assert.Equal(t, jobTarget, id)

	id, ok = resolver.Resolve(models.TargetCounterparty, "ALDI")
	assert.True(t, ok)
	assert.Equal(t, profileOnly, id)
}

func TestValueResolverMergeConflict(t *testing.T) {
	resolver, err := importer.NewValueResolver(nil)
	require.NoError(t, err)

	err = resolver.Merge([]models.ValueMapping{
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: uuid.New()},
		{SourceValue: "REWE", TargetType: models.TargetCounterparty, TargetID: uuid.New()},
	})
	assert.ErrorIs(t, err, importer.ErrConflictingMapping)
}
