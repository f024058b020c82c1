package swift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ir "github.com/hanpama/swiftgraph/internal/ir"
)

func TestPropertyName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hero", "hero"},
		{"heroName", "heroName"},
		{"self", "`self`"},
		{"default", "`default`"},
		{"Type", "`Type`"},
		{"class", "`class`"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, propertyName(c.in), "propertyName(%q)", c.in)
	}
}

func TestStructNames(t *testing.T) {
	assert.Equal(t, "Hero", structNameForPropertyName("hero"))
	assert.Equal(t, "Friend", structNameForPropertyName("friends"))
	assert.Equal(t, "SearchResult", structNameForPropertyName("searchResults"))
	assert.Equal(t, "AsDroid", structNameForTypeCondition("Droid"))
	assert.Equal(t, "CharacterDetails", structNameForFragmentName("CharacterDetails"))
	assert.Equal(t, "HeroDetails", structNameForFragmentName("heroDetails"))
}

func TestAccessorNames(t *testing.T) {
	assert.Equal(t, "asDroid", propertyNameForTypeCondition("Droid"))
	assert.Equal(t, "characterDetails", propertyNameForFragmentName("CharacterDetails"))
}

func TestOperationClassName(t *testing.T) {
	cases := []struct {
		name string
		kind ir.OperationKind
		want string
	}{
		{"HeroName", ir.OperationQuery, "HeroNameQuery"},
		{"heroName", ir.OperationQuery, "HeroNameQuery"},
		{"HeroNameQuery", ir.OperationQuery, "HeroNameQuery"},
		{"CreateReview", ir.OperationMutation, "CreateReviewMutation"},
		{"CreateReviewMutation", ir.OperationMutation, "CreateReviewMutation"},
	}
	for _, c := range cases {
		op := &ir.Operation{Name: c.name, Kind: c.kind}
		assert.Equal(t, c.want, operationClassName(op), "operationClassName(%q)", c.name)
	}
}

func TestFactoryName(t *testing.T) {
	assert.Equal(t, "makeDroid", factoryName("Droid"))
	assert.Equal(t, "makeHumanBeing", factoryName("HumanBeing"))
}

func TestEnumCaseName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"NEW_HOPE", "newHope"},
		{"EMPIRE", "empire"},
		{"JEDI", "jedi"},
		{"DEFAULT", "`default`"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, enumCaseName(c.in), "enumCaseName(%q)", c.in)
	}
}
