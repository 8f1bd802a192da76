package project

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/chipflow/internal/faults"
	"github.com/vk/chipflow/internal/matrix"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateTest converts one HCL test block into a table row.
func (l *Loader) translateTest(t *testBlock) (matrix.Row, error) {
	row := matrix.Row{DUT: t.DUT, TB: t.TB}
	for _, tr := range t.Trials {
		gens, err := genericsFromExpr(t.Name, tr.Generics)
		if err != nil {
			return matrix.Row{}, err
		}
		row.Trials = append(row.Trials, matrix.Trial{Generics: gens, Seed: tr.Seed})
	}
	return row, nil
}

// genericsFromExpr reads a generics object expression, walking its key/value
// pairs in source order: generic insertion order is significant because it
// is encoded into the regression directory name.
func genericsFromExpr(test string, expr hcl.Expression) ([]matrix.Generic, error) {
	if expr == nil {
		return nil, nil
	}
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		if val, vdiags := expr.Value(nil); !vdiags.HasErrors() && val.IsNull() {
			return nil, nil
		}
		return nil, faults.Configurationf("test %q: generics must be an object of KEY = VALUE pairs", test)
	}
	gens := make([]matrix.Generic, 0, len(pairs))
	for _, kv := range pairs {
		key, err := evalString(kv.Key)
		if err != nil {
			return nil, faults.Configurationf("test %q: bad generic name: %v", test, err)
		}
		val, err := evalString(kv.Value)
		if err != nil {
			return nil, faults.Configurationf("test %q: bad value for generic %q: %v", test, key, err)
		}
		gens = append(gens, matrix.Generic{Key: key, Value: val})
	}
	return gens, nil
}

// evalString evaluates an expression and converts the result to a string.
// Numbers and booleans convert; generics are passed to tools as text anyway.
func evalString(expr hcl.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	return s.AsString(), nil
}
