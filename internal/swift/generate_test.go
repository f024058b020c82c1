package swift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ir "github.com/hanpama/swiftgraph/internal/ir"
	language "github.com/hanpama/swiftgraph/internal/language"
)

const testSchema = `
type Query {
  hero: Character
  droid(id: ID!): Droid
  reviews(episode: Episode!): [Review]
}

type Mutation {
  createReview(episode: Episode, review: ReviewInput!): Review
}

interface Character {
  name: String!
  friends: [Character]
}

type Human implements Character {
  name: String!
  friends: [Character]
  height: Float
}

type Droid implements Character {
  name: String!
  friends: [Character]
  primaryFunction: String
}

enum Episode { NEW_HOPE EMPIRE JEDI }

input ReviewInput {
  stars: Int!
  commentary: String
}

type Review {
  stars: Int!
  commentary: String
}

scalar Date
`

func compile(t *testing.T, querySrc string, opts *Options) string {
	t.Helper()
	schema, err := language.LoadSchema(&language.Source{Name: "schema.graphql", Input: testSchema})
	require.NoError(t, err)
	qdoc, err := language.LoadQuery(schema, querySrc)
	require.NoError(t, err)
	doc, err := ir.Build(schema, qdoc)
	require.NoError(t, err)
	out, err := Generate(doc, opts)
	require.NoError(t, err)
	return out
}

func TestGenerateHeroQuery(t *testing.T) {
	out := compile(t, `query HeroName { hero { name } }`, nil)

	assert.Contains(t, out, "// This file was automatically generated and should not be edited.")
	assert.Contains(t, out, "public final class HeroNameQuery: GraphQLQuery {")
	assert.Contains(t, out, `public let operationName: String = "HeroName"`)
	assert.NotContains(t, out, "operationIdentifier")

	// The embedded source carries the injected meta field.
	assert.Contains(t, out, "__typename")

	assert.Contains(t, out, "public struct Data: GraphQLSelectionSet {")
	assert.Contains(t, out, `public static let possibleTypes: [String] = ["Query"]`)
	assert.Contains(t, out, "GraphQLField(\"hero\", type: .object(Hero.selections)),")

	assert.Contains(t, out, "public struct Hero: GraphQLSelectionSet {")
	assert.Contains(t, out, `public static let possibleTypes: [String] = ["Human", "Droid"]`)
	assert.Contains(t, out, `GraphQLField("__typename", type: .nonNull(.scalar(String.self))),`)
	assert.Contains(t, out, `GraphQLField("name", type: .nonNull(.scalar(String.self))),`)

	// Both possible types share one field set, so each gets a factory with
	// the same shape.
	assert.Contains(t, out, "public static func makeHuman(name: String) -> Hero {")
	assert.Contains(t, out, "public static func makeDroid(name: String) -> Hero {")
	assert.Contains(t, out, `return Hero(unsafeResultMap: ["__typename": "Human", "name": name])`)

	assert.Contains(t, out, "public var hero: Hero? {")
	assert.Contains(t, out, `return (resultMap["hero"] as? ResultMap).flatMap { (value: ResultMap) -> Hero in Hero(unsafeResultMap: value) }`)
	assert.Contains(t, out, `resultMap.updateValue(newValue.flatMap { (value: Hero) -> ResultMap in value.resultMap }, forKey: "hero")`)
	assert.Contains(t, out, `return resultMap["name"]! as! String`)
}

func TestGenerateDeterministicOutput(t *testing.T) {
	const query = `
	query HeroAndFriends { hero { name friends { name ...CharacterName } } }
	fragment CharacterName on Character { name }
	`
	first := compile(t, query, &Options{GenerateOperationIDs: true})
	second := compile(t, query, &Options{GenerateOperationIDs: true})
	require.Equal(t, first, second)
}

func TestGenerateSingleObjectInitializer(t *testing.T) {
	out := compile(t, `query Reviews { reviews(episode: JEDI) { stars commentary } }`, nil)

	// A single-possible-type record gets a memberwise initializer, not
	// factories.
	assert.Contains(t, out, "public init(stars: Int, commentary: String? = nil) {")
	assert.Contains(t, out, `self.init(unsafeResultMap: ["__typename": "Review", "stars": stars, "commentary": commentary])`)
	assert.NotContains(t, out, "makeReview")

	assert.Contains(t, out, `GraphQLField("reviews", arguments: ["episode": "JEDI"], type: .list(.object(Review.selections))),`)
	assert.Contains(t, out, "public var reviews: [Review?]? {")
}

func TestGenerateTypeConditions(t *testing.T) {
	out := compile(t, `query HeroDetails {
	  hero {
	    name
	    ... on Droid { primaryFunction }
	  }
	}`, nil)

	assert.Contains(t, out, "GraphQLTypeCondition(AsDroid.self),")
	assert.Contains(t, out, "public var asDroid: AsDroid? {")
	assert.Contains(t, out, `if !AsDroid.possibleTypes.contains(resultMap["__typename"]! as! String) { return nil }`)
	assert.Contains(t, out, "return AsDroid(unsafeResultMap: resultMap)")
	assert.Contains(t, out, "public struct AsDroid: GraphQLSelectionSet {")

	// The type case splits: Human keeps the shared fields, Droid adds its
	// conditioned field.
	assert.Contains(t, out, "public static func makeHuman(name: String) -> Hero {")
	assert.Contains(t, out, "public static func makeDroid(name: String, primaryFunction: String? = nil) -> Hero {")
	assert.Contains(t, out, `return Hero(unsafeResultMap: ["__typename": "Droid", "name": name, "primaryFunction": primaryFunction])`)
}

func TestGenerateFragments(t *testing.T) {
	out := compile(t, `
	query HeroName { hero { ...CharacterName ...DroidDetails } }
	fragment CharacterName on Character { name }
	fragment DroidDetails on Droid { primaryFunction }
	`, nil)

	assert.Contains(t, out, "GraphQLFragmentSpread(CharacterName.self),")
	assert.Contains(t, out, "GraphQLFragmentSpread(DroidDetails.self),")

	assert.Contains(t, out, "public var fragments: Fragments {")
	assert.Contains(t, out, "return Fragments(unsafeResultMap: resultMap)")
	assert.Contains(t, out, "public struct Fragments {")

	// CharacterName covers every possible type of hero; DroidDetails does
	// not, so its view is optional and guarded.
	assert.Contains(t, out, "public var characterName: CharacterName {")
	assert.Contains(t, out, "public var droidDetails: DroidDetails? {")
	assert.Contains(t, out, `if !DroidDetails.possibleTypes.contains(resultMap["__typename"]! as! String) { return nil }`)

	assert.Contains(t, out, "public struct CharacterName: GraphQLFragment {")
	assert.Contains(t, out, "public static let fragmentDefinition: String =")
	assert.Contains(t, out, "fragment CharacterName on Character")

	assert.Contains(t, out, "public var queryDocument: String {")
	assert.Contains(t, out, `document.append("\n" + CharacterName.fragmentDefinition)`)
	assert.Contains(t, out, `document.append("\n" + DroidDetails.fragmentDefinition)`)
}

func TestGenerateBooleanConditions(t *testing.T) {
	out := compile(t, `query Hero($withFriends: Boolean!) {
	  hero {
	    name
	    friends @include(if: $withFriends) { name }
	  }
	}`, nil)

	assert.Contains(t, out, `GraphQLBooleanCondition(variableName: "withFriends", inverted: false, selections: [`)
	assert.Contains(t, out, `GraphQLField("friends", type: .list(.object(Friend.selections))),`)

	// The conditioned field surfaces as optional and defaults to nil in the
	// initializer parameter list.
	assert.Contains(t, out, "public var friends: [Friend?]? {")
	assert.Contains(t, out, "friends: [Friend?]? = nil")
}

func TestGenerateVariables(t *testing.T) {
	out := compile(t, `query Droid($id: ID!) { droid(id: $id) { name } }`, nil)

	assert.Contains(t, out, "public var id: GraphQLID")
	assert.Contains(t, out, "public init(id: GraphQLID) {")
	assert.Contains(t, out, "self.id = id")
	assert.Contains(t, out, "public var variables: GraphQLMap? {")
	assert.Contains(t, out, `return ["id": id]`)
	assert.Contains(t, out, `GraphQLField("droid", arguments: ["id": GraphQLVariable("id")], type: .object(Droid.selections)),`)
}

func TestGenerateEnumsAndInputObjects(t *testing.T) {
	out := compile(t, `mutation CreateReview($ep: Episode, $review: ReviewInput!) {
	  createReview(episode: $ep, review: $review) { stars }
	}`, nil)

	assert.Contains(t, out, "public final class CreateReviewMutation: GraphQLMutation {")

	assert.Contains(t, out, "public enum Episode: String, Equatable, CaseIterable {")
	assert.Contains(t, out, `case newHope = "NEW_HOPE"`)
	assert.Contains(t, out, `case empire = "EMPIRE"`)
	assert.Contains(t, out, `case jedi = "JEDI"`)

	assert.Contains(t, out, "public struct ReviewInput: GraphQLMapConvertible {")
	assert.Contains(t, out, "public var graphQLMap: GraphQLMap")
	assert.Contains(t, out, "public init(stars: Int, commentary: String? = nil) {")
	assert.Contains(t, out, `graphQLMap = ["stars": stars, "commentary": commentary]`)
	assert.Contains(t, out, `return graphQLMap["stars"] as! Int`)
	assert.Contains(t, out, `return graphQLMap["commentary"] as? String`)

	assert.Contains(t, out, "public init(ep: Episode? = nil, review: ReviewInput) {")
	assert.Contains(t, out, `return ["ep": ep, "review": review]`)
}

func TestGenerateOperationIdentifiers(t *testing.T) {
	const query = `query HeroName { hero { name } }`
	out := compile(t, query, &Options{GenerateOperationIDs: true})

	i := strings.Index(out, `public let operationIdentifier: String? = "`)
	require.GreaterOrEqual(t, i, 0)
	id := out[i+len(`public let operationIdentifier: String? = "`):]
	id = id[:strings.Index(id, `"`)]
	assert.Len(t, id, 64)

	// Identical input yields an identical identifier.
	assert.Equal(t, out, compile(t, query, &Options{GenerateOperationIDs: true}))
}

func TestGenerateNamespace(t *testing.T) {
	out := compile(t, `query HeroName { hero { name } }`, &Options{Namespace: "StarWarsAPI"})

	assert.Contains(t, out, "public enum StarWarsAPI {")
	require.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "}"))

	// Declarations are nested one level deeper under the namespace.
	assert.Contains(t, out, "  public final class HeroNameQuery: GraphQLQuery {")
}

func TestGenerateCustomScalars(t *testing.T) {
	schemaWithDate := testSchema + "\nextend type Query { today: Date }\n"
	schema, err := language.LoadSchema(&language.Source{Name: "schema.graphql", Input: schemaWithDate})
	require.NoError(t, err)
	qdoc, err := language.LoadQuery(schema, `query Today { today }`)
	require.NoError(t, err)
	doc, err := ir.Build(schema, qdoc)
	require.NoError(t, err)

	out, err := Generate(doc, &Options{CustomScalarsPrefix: "My"})
	require.NoError(t, err)
	assert.Contains(t, out, "public var today: MyDate? {")
	assert.Contains(t, out, `GraphQLField("today", type: .scalar(MyDate.self)),`)

	out, err = Generate(doc, &Options{PassthroughCustomScalars: true})
	require.NoError(t, err)
	assert.Contains(t, out, "public var today: String? {")
}
