package importer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
)

type valueKey struct {
	targetType models.ValueTargetType
	source     string
}

// ValueResolver translates raw source values to target resource IDs.
//
// Matching is exact and case sensitive so that resolution stays
// deterministic and auditable.
type ValueResolver struct {
	targets map[valueKey]uuid.UUID
}

// NewValueResolver builds the lookup table from the stored mappings.
//
// Two mappings for the same source value and target type with different
// targets fail fast with ErrConflictingMapping. Exact duplicates are
// tolerated, they cannot change the result.
func NewValueResolver(mappings []models.ValueMapping) (*ValueResolver, error) {
	r := &ValueResolver{
		targets: make(map[valueKey]uuid.UUID, len(mappings)),
	}

	err := r.add(mappings)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Merge adds mappings from a lower-priority scope, e.g. a mapping
// profile behind the job's own mappings. Keys that are already present
// keep their target; conflicts within the added scope still fail.
func (r *ValueResolver) Merge(mappings []models.ValueMapping) error {
	scope, err := NewValueResolver(mappings)
	if err != nil {
		return err
	}

	for key, target := range scope.targets {
		if _, ok := r.targets[key]; !ok {
			r.targets[key] = target
		}
	}

	return nil
}

func (r *ValueResolver) add(mappings []models.ValueMapping) error {
	for _, m := range mappings {
		key := valueKey{targetType: m.TargetType, source: m.SourceValue}

		if existing, ok := r.targets[key]; ok && existing != m.TargetID {
			return fmt.Errorf("%w: %q maps to two different %s targets", ErrConflictingMapping, m.SourceValue, m.TargetType)
		}

		r.targets[key] = m.TargetID
	}

	return nil
}

// Resolve returns the target for a raw value, if one is mapped.
func (r *ValueResolver) Resolve(targetType models.ValueTargetType, raw string) (uuid.UUID, bool) {
	target, ok := r.targets[valueKey{targetType: targetType, source: raw}]
	return target, ok
}
