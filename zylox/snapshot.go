package zylox

import (
	"fmt"
	"io"

	"github.com/tinylib/msgp/msgp"
)

const SnapshotVersion = 1

// SaveGlobals writes the scalar global bindings (nil, booleans,
// numbers, strings) as a msgpack map. Functions, classes and
// instances cannot outlive the session and are skipped. It returns
// how many bindings were written.
func (in *Interpreter) SaveGlobals(w io.Writer) (int, error) {
	names := make([]string, 0)
	for _, name := range in.globals.Names() {
		v, _ := in.globals.Lookup(name)
		if _, ok := valueToGo(v); ok {
			names = append(names, name)
		}
	}

	mw := msgp.NewWriter(w)
	if err := mw.WriteMapHeader(2); err != nil {
		return 0, err
	}
	if err := mw.WriteString("version"); err != nil {
		return 0, err
	}
	if err := mw.WriteInt(SnapshotVersion); err != nil {
		return 0, err
	}
	if err := mw.WriteString("globals"); err != nil {
		return 0, err
	}
	if err := mw.WriteMapHeader(uint32(len(names))); err != nil {
		return 0, err
	}
	for _, name := range names {
		v, _ := in.globals.Lookup(name)
		g, _ := valueToGo(v)
		if err := mw.WriteString(name); err != nil {
			return 0, err
		}
		if err := mw.WriteIntf(g); err != nil {
			return 0, err
		}
	}
	return len(names), mw.Flush()
}

// LoadGlobals defines every binding found in a snapshot written by
// SaveGlobals, overwriting globals of the same name.
func (in *Interpreter) LoadGlobals(r io.Reader) (int, error) {
	mr := msgp.NewReader(r)
	sz, err := mr.ReadMapHeader()
	if err != nil {
		return 0, err
	}
	loaded := 0
	for ; sz > 0; sz-- {
		field, err := mr.ReadString()
		if err != nil {
			return loaded, err
		}
		switch field {
		case "version":
			ver, err := mr.ReadInt()
			if err != nil {
				return loaded, err
			}
			if ver != SnapshotVersion {
				return loaded, ErrSnapshotVersion
			}
		case "globals":
			n, err := mr.ReadMapHeader()
			if err != nil {
				return loaded, err
			}
			for ; n > 0; n-- {
				name, err := mr.ReadString()
				if err != nil {
					return loaded, err
				}
				g, err := mr.ReadIntf()
				if err != nil {
					return loaded, err
				}
				v, err := goToValue(g)
				if err != nil {
					return loaded, fmt.Errorf("global '%s': %v", name, err)
				}
				in.globals.Define(name, v)
				loaded++
			}
		default:
			if err := mr.Skip(); err != nil {
				return loaded, err
			}
		}
	}
	return loaded, nil
}

func valueToGo(v Value) (interface{}, bool) {
	switch x := v.(type) {
	case LoxNil:
		return nil, true
	case LoxBool:
		return bool(x), true
	case LoxNumber:
		return float64(x), true
	case LoxString:
		return string(x), true
	}
	return nil, false
}

func goToValue(g interface{}) (Value, error) {
	switch x := g.(type) {
	case nil:
		return Nil, nil
	case bool:
		return LoxBool(x), nil
	case float64:
		return LoxNumber(x), nil
	case float32:
		return LoxNumber(x), nil
	case int64:
		return LoxNumber(x), nil
	case uint64:
		return LoxNumber(x), nil
	case string:
		return LoxString(x), nil
	}
	return Nil, fmt.Errorf("cannot restore value of type %T", g)
}
