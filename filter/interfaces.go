package filter

// Record is the environment a filter is evaluated against. Keys become
// variables in the expression, e.g. Name or Color.
type Record map[string]any

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	// Match checks if a record matches the filter criteria
	Match(record Record) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}
