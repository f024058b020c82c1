package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/hanpama/swiftgraph/internal/config"
	"github.com/hanpama/swiftgraph/internal/ir"
	"github.com/hanpama/swiftgraph/internal/language"
	"github.com/hanpama/swiftgraph/internal/otel"
	"github.com/hanpama/swiftgraph/internal/swift"
)

const rootUsage = `swiftgraph — GraphQL operations to Swift API code

USAGE:
  swiftgraph <command> [flags]

COMMANDS:
  generate         Compile schema + operations into a Swift source file
  help             Show help for any command
`

const generateUsage = `generate FLAGS:
  -config <file>                  Config file (default: swiftgraph.yml)
  -schema <glob>                  Schema definition file or glob. Repeatable
  -queries <glob>                 Operation document file or glob. Repeatable
  -out <file>                     Output file (default: stdout)
  -namespace <name>               Wrap generated declarations in an enum namespace
  -passthrough-custom-scalars     Map custom scalars to String
  -custom-scalars-prefix <p>      Prefix for custom scalar type names
  -operation-ids                  Emit content-addressed operation identifiers
  -otel.endpoint <addr>           OTLP collector endpoint
  -otel.service <name>            OpenTelemetry service name (default: swiftgraph)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("swiftgraph", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "generate":
		return cmdGenerate(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "generate":
		fmt.Print(generateUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdGenerate(args []string) error {
	configFile := config.DefaultFilename
	var schemaGlobs, queryGlobs stringListFlag
	out := ""
	namespace := ""
	passthrough := false
	scalarPrefix := ""
	operationIDs := false
	otelEndpoint := ""
	otelService := "swiftgraph"

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&configFile, "config", configFile, "Config file")
	fs.Var(&schemaGlobs, "schema", "Schema definition file or glob")
	fs.Var(&queryGlobs, "queries", "Operation document file or glob")
	fs.StringVar(&out, "out", out, "Output file")
	fs.StringVar(&namespace, "namespace", namespace, "Namespace enum for generated declarations")
	fs.BoolVar(&passthrough, "passthrough-custom-scalars", passthrough, "Map custom scalars to String")
	fs.StringVar(&scalarPrefix, "custom-scalars-prefix", scalarPrefix, "Prefix for custom scalar type names")
	fs.BoolVar(&operationIDs, "operation-ids", operationIDs, "Emit operation identifiers")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, generateUsage)
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := &config.Config{}
	if _, err := os.Stat(configFile); err == nil {
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	} else if set["config"] {
		return fmt.Errorf("unable to read config: %w", err)
	}

	if len(schemaGlobs) > 0 {
		cfg.Schema = schemaGlobs
	}
	if len(queryGlobs) > 0 {
		cfg.Queries = queryGlobs
	}
	if set["out"] {
		cfg.Output = out
	}
	if set["namespace"] {
		cfg.Swift.Namespace = namespace
	}
	if set["passthrough-custom-scalars"] {
		cfg.Swift.PassthroughCustomScalars = passthrough
	}
	if set["custom-scalars-prefix"] {
		cfg.Swift.CustomScalarsPrefix = scalarPrefix
	}
	if set["operation-ids"] {
		cfg.Swift.OperationIDs = operationIDs
	}
	if set["otel.endpoint"] {
		cfg.Otel.Endpoint = otelEndpoint
	}
	if set["otel.service"] {
		cfg.Otel.Service = otelService
	}
	if cfg.Otel.Service == "" {
		cfg.Otel.Service = otelService
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprint(os.Stderr, generateUsage)
		return err
	}

	shutdown, err := otel.Setup(cfg.Otel.Endpoint, cfg.Otel.Service)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	source, err := generate(context.Background(), cfg)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		fmt.Print(source)
		return nil
	}
	return os.WriteFile(cfg.Output, []byte(source), 0644)
}

func generate(ctx context.Context, cfg *config.Config) (string, error) {
	ctx, span := otel.Tracer().Start(ctx, "swiftgraph.generate")
	defer span.End()

	schema, err := loadSchema(ctx, cfg)
	if err != nil {
		return "", err
	}
	doc, err := loadQueries(ctx, cfg, schema)
	if err != nil {
		return "", err
	}

	_, compileSpan := otel.Tracer().Start(ctx, "swiftgraph.compile")
	defer compileSpan.End()
	irDoc, err := ir.Build(schema, doc)
	if err != nil {
		return "", fmt.Errorf("build: %w", err)
	}
	compileSpan.SetAttributes(
		attribute.Int("graphql.operation_count", len(irDoc.Operations)),
		attribute.Int("graphql.fragment_count", len(irDoc.Fragments)),
	)

	source, err := swift.Generate(irDoc, &swift.Options{
		Namespace:                cfg.Swift.Namespace,
		PassthroughCustomScalars: cfg.Swift.PassthroughCustomScalars,
		CustomScalarsPrefix:      cfg.Swift.CustomScalarsPrefix,
		GenerateOperationIDs:     cfg.Swift.OperationIDs,
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return source, nil
}

func loadSchema(ctx context.Context, cfg *config.Config) (*language.Schema, error) {
	_, span := otel.Tracer().Start(ctx, "swiftgraph.load_schema")
	defer span.End()

	files, err := cfg.SchemaFiles()
	if err != nil {
		return nil, err
	}
	sources := make([]*language.Source, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		sources = append(sources, &language.Source{Name: file, Input: string(content)})
	}
	schema, err := language.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return schema, nil
}

func loadQueries(ctx context.Context, cfg *config.Config, schema *language.Schema) (*language.QueryDocument, error) {
	_, span := otel.Tracer().Start(ctx, "swiftgraph.load_queries")
	defer span.End()

	files, err := cfg.QueryFiles()
	if err != nil {
		return nil, err
	}
	var combined strings.Builder
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read queries: %w", err)
		}
		combined.Write(content)
		combined.WriteByte('\n')
	}
	doc, err := language.LoadQuery(schema, combined.String())
	if err != nil {
		return nil, fmt.Errorf("load queries: %w", err)
	}
	return doc, nil
}
