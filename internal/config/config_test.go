package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "swiftgraph.yml", `
schema:
  - schema.graphql
queries:
  - queries/*.graphql
output: API.swift
swift:
  namespace: StarWarsAPI
  passthrough_custom_scalars: true
  custom_scalars_prefix: My
  operation_ids: true
otel:
  endpoint: localhost:4317
  service: swiftgraph-ci
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"schema.graphql"}, cfg.Schema)
	assert.Equal(t, []string{"queries/*.graphql"}, cfg.Queries)
	assert.Equal(t, "API.swift", cfg.Output)
	assert.Equal(t, "StarWarsAPI", cfg.Swift.Namespace)
	assert.True(t, cfg.Swift.PassthroughCustomScalars)
	assert.Equal(t, "My", cfg.Swift.CustomScalarsPrefix)
	assert.True(t, cfg.Swift.OperationIDs)
	assert.Equal(t, "localhost:4317", cfg.Otel.Endpoint)
	assert.Equal(t, "swiftgraph-ci", cfg.Otel.Service)
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "swiftgraph.yml", `
schema: [schema.graphql]
queries: [queries.graphql]
swift:
  namspace: Oops
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse config")
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SCHEMA_DIR", "graphql")
	dir := t.TempDir()
	path := writeFile(t, dir, "swiftgraph.yml", `
schema: ["${SCHEMA_DIR}/schema.graphql"]
queries: ["${SCHEMA_DIR}/queries.graphql"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"graphql/schema.graphql"}, cfg.Schema)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read config")
}

func TestValidate(t *testing.T) {
	err := (&Config{Queries: []string{"q.graphql"}}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'schema' not specified")

	err = (&Config{Schema: []string{"s.graphql"}}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'queries' not specified")
}

func TestGlobExpansion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.graphql", "type Query { b: Int }")
	writeFile(t, dir, "a.graphql", "type Query { a: Int }")

	cfg := &Config{
		Schema:  []string{filepath.Join(dir, "*.graphql"), filepath.Join(dir, "a.graphql")},
		Queries: []string{filepath.Join(dir, "missing-*.graphql")},
	}

	// Matches come back sorted and deduplicated.
	files, err := cfg.SchemaFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.graphql"), filepath.Join(dir, "b.graphql")}, files)

	// A pattern matching nothing is an error.
	_, err = cfg.QueryFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}
