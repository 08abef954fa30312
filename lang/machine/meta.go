package machine

import "github.com/mna/caplang/lang/types"

// evalMetaState implements "meta.getState()": a map from "&&name" to the
// binding each of the enclosing object's frame names currently holds, or
// an empty map for a top-level activation with no enclosing object.
func evalMetaState(act *activation) types.Value {
	if act.obj == nil || len(act.obj.frame) == 0 {
		return types.NewConstMap(nil, nil)
	}

	frame := act.obj.frame
	keys := make([]types.Value, len(frame))
	vals := make([]types.Value, len(frame))
	for i, cell := range frame {
		keys[i] = types.Str("&&" + act.obj.frameNames[i])
		vals[i] = readBinding(cell)
	}
	return types.NewConstMap(keys, vals)
}

// evalMetaContext implements "meta.context()": an object whose only
// understood verb is getFQNPrefix/0, reporting the enclosing activation's
// fully-qualified name prefix plus a trailing "$" the way nested object
// construction extends its own fqn.
func evalMetaContext(act *activation) types.Value {
	return &metaContextObj{fqnPrefix: act.fqnPrefix}
}

type metaContextObj struct {
	fqnPrefix string
}

func (m *metaContextObj) String() string   { return "<metaContext>" }
func (m *metaContextObj) TypeName() string { return "MetaContext" }
func (m *metaContextObj) Call(t *types.Thread, verb string, args []types.Value, named map[string]types.Value) (types.Value, error) {
	switch verb {
	case "getFQNPrefix":
		return types.Str(m.fqnPrefix + "$"), nil
	}
	return nil, types.NewThrown(verb + " not understood by a MetaContext")
}
