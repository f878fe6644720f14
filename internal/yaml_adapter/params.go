package yaml_adapter

import (
	"errors"
	"fmt"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/paramset"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v2"
)

// translateParameterSet reads the `base` list and every other key as a
// parameter group. where prefixes error messages.
func translateParameterSet(where string, body yaml.MapSlice) (*config.ParameterSetDefinition, error) {
	def := &config.ParameterSetDefinition{}
	var errs []error
	for _, item := range body {
		key := fmt.Sprint(item.Key)
		if key == "base" {
			bases, err := stringList(item.Value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.base: %w", where, err))
				continue
			}
			def.Base = append(def.Base, bases...)
			continue
		}

		group, err := translateGroup(where+"."+key, key, item.Value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		def.Groups = append(def.Groups, group)
	}
	return def, errors.Join(errs...)
}

func translateGroup(where, name string, raw interface{}) (paramset.Group, error) {
	group := paramset.Group{Name: name}
	if raw == nil {
		return group, nil
	}
	entries, ok := raw.([]interface{})
	if !ok {
		return group, fmt.Errorf("%s: expected a list of [name, kind, value] entries", where)
	}

	var errs []error
	for i, entry := range entries {
		p, err := translateParameter(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", where, i, err))
			continue
		}
		group.Params = append(group.Params, p)
	}
	return group, errors.Join(errs...)
}

func translateParameter(raw interface{}) (paramset.Parameter, error) {
	tuple, ok := raw.([]interface{})
	if !ok || len(tuple) != 3 {
		return paramset.Parameter{}, errors.New("expected a [name, kind, value] tuple")
	}
	name, ok := tuple[0].(string)
	if !ok {
		return paramset.Parameter{}, errors.New("parameter name must be a string")
	}
	kind, ok := tuple[1].(string)
	if !ok {
		return paramset.Parameter{}, errors.New("parameter kind must be a string")
	}
	value, err := toCtyValue(tuple[2])
	if err != nil {
		return paramset.Parameter{}, fmt.Errorf("value of %q: %w", name, err)
	}
	return paramset.Parameter{Name: name, Kind: kind, Value: value}, nil
}

// toCtyValue converts a decoded YAML scalar or sequence to a cty.Value.
// Sequences become tuples so that mixed element types are kept.
func toCtyValue(raw interface{}) (cty.Value, error) {
	switch v := raw.(type) {
	case nil:
		return cty.NilVal, errors.New("value must be set")
	case []interface{}:
		elems := make([]cty.Value, 0, len(v))
		for _, e := range v {
			ctyVal, err := toCtyValue(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ctyVal)
		}
		return cty.TupleVal(elems), nil
	case yaml.MapSlice:
		return cty.NilVal, errors.New("mappings are not supported as parameter values")
	}

	ty, err := gocty.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported value %v: %w", raw, err)
	}
	if !ty.IsPrimitiveType() {
		return cty.NilVal, fmt.Errorf("unsupported value %v of type %s", raw, ty.FriendlyName())
	}
	return gocty.ToCtyValue(raw, ty)
}

func stringList(raw interface{}) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("expected a list of names")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a name, got %v", item)
		}
		out = append(out, s)
	}
	return out, nil
}
