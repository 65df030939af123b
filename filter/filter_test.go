package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Color == "blue"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `Name == "unclosed`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `icontains(Name, "api") and Number > 10 and daysSince(Started) < 30`,
		},
		{
			name:       "non boolean result",
			expression: `"just a string"`,
			wantErr:    true,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	started := time.Now().Add(-48 * time.Hour)
	record := Record{
		"Name":    "platform-api",
		"Color":   "red",
		"Number":  42,
		"Started": started,
	}

	tests := []struct {
		expression string
		want       bool
	}{
		{`Color == "red"`, true},
		{`Color == "blue"`, false},
		{`icontains(Name, "API")`, true},
		{`Name startsWith "platform"`, true},
		{`Number >= 40 && Number < 50`, true},
		{`daysSince(Started) == 2`, true},
		{`hoursSince(Started) >= 47`, true},
		{`Missing == nil`, true},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`Color == "blue"`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  Color == "blue"  `)
	require.NoError(t, err)
	assert.Same(t, first, again)

	// Two newer entries evict the first
	_, err = compiler.Compile(`Color == "red"`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Color == "yellow"`)
	require.NoError(t, err)

	evicted, err := compiler.Compile(`Color == "blue"`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)
}

func TestCompilerWithoutCache(t *testing.T) {
	compiler := NewExprCompiler()
	first, err := compiler.Compile(`Color == "blue"`)
	require.NoError(t, err)
	again, err := compiler.Compile(`Color == "blue"`)
	require.NoError(t, err)
	assert.NotSame(t, first, again)
}

func TestWithCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isMain": func(s string) bool { return s == "main" || s == "master" },
	}))

	f, err := compiler.Compile(`isMain(Name)`)
	require.NoError(t, err)

	ok, err := f.Match(Record{"Name": "master"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApply(t *testing.T) {
	type job struct {
		name  string
		color string
	}
	jobs := []job{
		{"api", "blue"},
		{"web", "red"},
		{"worker", "red_anime"},
	}

	f, err := NewExprCompiler().Compile(`Color startsWith "red"`)
	require.NoError(t, err)

	matched, err := Apply(f, jobs, func(j job) Record {
		return Record{"Name": j.name, "Color": j.color}
	})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "web", matched[0].name)
	assert.Equal(t, "worker", matched[1].name)
}

func TestApplyEvaluationError(t *testing.T) {
	f, err := NewExprCompiler().Compile(`Number > 1`)
	require.NoError(t, err)

	_, err = Apply(f, []string{"x"}, func(s string) Record {
		return Record{"Name": s, "Number": "not a number"}
	})
	require.Error(t, err)
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "x", evalErr.Item)
}
