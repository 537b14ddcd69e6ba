package settings

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode populates target, a non-nil pointer to a settings struct, from the
// provided cty values. Fields are matched by `chain:"name"` tag; required
// unless the tag carries ",optional". Unknown keys in vals are rejected so
// a typo in configuration cannot be silently ignored.
func Decode(target any, vals map[string]cty.Value) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("settings target must be a non-nil pointer, got %T", target)
	}
	structVal = structVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("settings target must point to a struct, got %T", target)
	}
	structType := structVal.Type()

	seen := make(map[string]struct{}, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		fieldDef := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldDef.IsExported() || !fieldVal.CanSet() {
			continue
		}

		tag := fieldDef.Tag.Get("chain")
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		seen[name] = struct{}{}
		optional := opts == "optional"

		val, provided := vals[name]
		if !provided || val.IsNull() {
			if optional {
				continue
			}
			return fmt.Errorf("missing required setting %q", name)
		}

		// HCL literals arrive as tuples/objects; convert to the exact type
		// implied by the Go field before binding.
		wantType, err := gocty.ImpliedType(fieldVal.Interface())
		if err != nil {
			return fmt.Errorf("setting %q: cannot imply cty type for Go field %s: %w", name, fieldDef.Name, err)
		}
		converted, err := convert.Convert(val, wantType)
		if err != nil {
			return fmt.Errorf("invalid value for setting %q: %w", name, err)
		}
		if err := gocty.FromCtyValue(converted, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("invalid value for setting %q: %w", name, err)
		}
	}

	for name := range vals {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("unknown setting %q", name)
		}
	}
	return nil
}
