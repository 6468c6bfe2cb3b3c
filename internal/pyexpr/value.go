package pyexpr

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// CtyFromGo lifts a decoded document value (the any shapes produced by
// encoding/json and yaml.v3) into a cty value. Values the document
// format cannot express degrade to their string rendering rather than
// failing.
func CtyFromGo(raw any) cty.Value {
	switch v := raw.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case bool:
		return cty.BoolVal(v)
	case string:
		return cty.StringVal(v)
	case int:
		return cty.NumberIntVal(int64(v))
	case int64:
		return cty.NumberIntVal(v)
	case float64:
		return cty.NumberFloatVal(v)
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(v))
		for i, e := range v {
			elems[i] = CtyFromGo(e)
		}
		return cty.TupleVal(elems)
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(v))
		for k, e := range v {
			attrs[k] = CtyFromGo(e)
		}
		return cty.ObjectVal(attrs)
	default:
		return cty.StringVal(fmt.Sprintf("%v", raw))
	}
}

// ValueFor lifts a variable's raw value, coercing it to the declared
// primitive type ("string", "number", "boolean") when the conversion is
// possible. Array and object declarations, and failed conversions, keep
// the value as decoded.
func ValueFor(declaredType string, raw any) cty.Value {
	v := CtyFromGo(raw)
	var want cty.Type
	switch declaredType {
	case "string":
		want = cty.String
	case "number":
		want = cty.Number
	case "boolean", "bool":
		want = cty.Bool
	default:
		return v
	}
	if converted, err := convert.Convert(v, want); err == nil {
		return converted
	}
	return v
}

// PyValue renders a cty value as a Python literal.
func PyValue(v cty.Value) string {
	if v.IsNull() {
		return "None"
	}
	t := v.Type()
	switch {
	case t == cty.Bool:
		if v.True() {
			return "True"
		}
		return "False"
	case t == cty.Number:
		return pyNumber(v)
	case t == cty.String:
		return StringLiteral(v.AsString())
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var elems []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			elems = append(elems, PyValue(ev))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case t.IsObjectType():
		// Attribute order is not defined, so sort for determinism.
		attrs := t.AttributeTypes()
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		var pairs []string
		for _, name := range names {
			pairs = append(pairs, StringLiteral(name)+": "+PyValue(v.GetAttr(name)))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	case t.IsMapType():
		var pairs []string
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			pairs = append(pairs, PyValue(kv)+": "+PyValue(ev))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	default:
		return "None"
	}
}

func pyNumber(v cty.Value) string {
	bf := v.AsBigFloat()
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return strconv.FormatInt(i, 10)
		}
	}
	f, _ := bf.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}
