package swift

// Options control the shape of the generated Swift source. A single Options
// value is constructed per run and passed into every generator call; there is
// no process-wide generator state.
type Options struct {
	// Namespace wraps all generated declarations in a caseless enum of the
	// given name when non-empty.
	Namespace string

	// PassthroughCustomScalars exposes custom scalar values as raw strings
	// instead of generating a named wrapper type.
	PassthroughCustomScalars bool

	// CustomScalarsPrefix is prepended to generated custom scalar type names.
	CustomScalarsPrefix string

	// GenerateOperationIDs emits the content-addressed identifier computed
	// for each operation.
	GenerateOperationIDs bool
}
