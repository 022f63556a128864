package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"placemaker/internal/hmis/models"
	dErrors "placemaker/pkg/domain-errors"
)

func TestSSNIndexDDL(t *testing.T) {
	assert.Equal(t,
		"CREATE UNIQUE INDEX IF NOT EXISTS persons_full_ssn_key ON persons (ssn) WHERE ssn_type = 'Full SSN reported'",
		SSNIndexDDL("persons"))
	assert.Equal(t, "clients_full_ssn_key", SSNIndexName("clients"))
}

func TestPersonConstraints(t *testing.T) {
	t.Run("paths are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, c := range PersonConstraints() {
			require.False(t, seen[c.Path], c.Path)
			seen[c.Path] = true
		}
	})

	t.Run("ssn uniqueness is scoped to full ssn", func(t *testing.T) {
		c := personConstraintAt(PathSSN)
		require.NotNil(t, c.UniqueWhen)
		assert.True(t, c.Unique)
		assert.Equal(t, PathSSNType, c.UniqueWhen.Field)
		assert.Equal(t, string(models.SSNTypeFull), c.UniqueWhen.Equals)
	})

	t.Run("choices follow enumeration order", func(t *testing.T) {
		c := personConstraintAt(PathDestination)
		assert.Equal(t, models.ChoiceStrings(models.DestinationValues()), c.Choices)
		assert.Len(t, c.Choices, 30)
	})

	t.Run("entry date defaults to now", func(t *testing.T) {
		c := personConstraintAt(PathProjectEntryDate)
		assert.True(t, c.Required)
		assert.Equal(t, DefaultNow, c.Default)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		first := PersonConstraints()
		first[0].Path = "mutated"
		first[6].Choices[0] = "mutated"
		second := PersonConstraints()
		assert.Equal(t, PathPersonalID, second[0].Path)
		assert.Equal(t, string(models.NameTypeFull), second[6].Choices[0])
	})
}

func TestMarshalConstraintsYAML(t *testing.T) {
	out, err := MarshalConstraintsYAML()
	require.NoError(t, err)

	var doc ConstraintDocument
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, Constraints(), doc)
	assert.Contains(t, string(out), "unique_when:")
}

func TestViolationsError(t *testing.T) {
	vs := Violations{
		{Path: PathFirstName, Kind: MissingRequiredField},
		{Path: PathRace, Kind: InvalidEnumValue, Value: "Martian"},
		{Path: PathGenderSpecify, Kind: ConditionalFieldViolation},
		{Path: PathTotalMonths, Kind: OutOfRange, Value: -1},
	}
	assert.Equal(t,
		"missing_required_field at name_info.first_name; invalid_enum_value at race; "+
			"conditional_field_violation at gender_info.gender_specify; ... (total 4)",
		vs.Error())
	assert.Equal(t, map[Kind]int{
		MissingRequiredField: 1, InvalidEnumValue: 1, ConditionalFieldViolation: 1, OutOfRange: 1,
	}, vs.CountByKind())
	assert.Len(t, vs.At(PathRace), 1)
	assert.Equal(t, "", Violations(nil).Error())
}

func TestAsViolations(t *testing.T) {
	vs := Violations{{Path: PathRace, Kind: InvalidEnumValue}}
	wrapped := dErrors.Wrap(fmt.Errorf("register: %w", vs), dErrors.CodeValidation, "person rejected")

	got, ok := AsViolations(wrapped)
	require.True(t, ok)
	assert.Equal(t, vs, got)

	_, ok = AsViolations(dErrors.New(dErrors.CodeNotFound, "person not found"))
	assert.False(t, ok)
}
