package freeze

import (
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap/zapcore"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range o.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteVal(o.values[k])
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// MarshalJSON encodes the array elements in order.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.items)
}

// DecodeJSON parses a JSON document into Objects, Arrays and primitives.
// Numbers decode as float64.
func DecodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return From(v), nil
}

// MarshalLogObject lets zap log an Object as a structured field.
func (o *Object) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	var err error
	o.Range(func(key string, value any) bool {
		err = addField(enc, key, value)
		return err == nil
	})
	return err
}

// MarshalLogArray lets zap log an Array as a structured field.
func (a *Array) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, v := range a.items {
		var err error
		switch t := v.(type) {
		case *Object:
			err = enc.AppendObject(t)
		case *Array:
			err = enc.AppendArray(t)
		case string:
			enc.AppendString(t)
		case bool:
			enc.AppendBool(t)
		case int:
			enc.AppendInt(t)
		case int64:
			enc.AppendInt64(t)
		case float64:
			enc.AppendFloat64(t)
		default:
			err = enc.AppendReflected(t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func addField(enc zapcore.ObjectEncoder, key string, value any) error {
	switch t := value.(type) {
	case *Object:
		return enc.AddObject(key, t)
	case *Array:
		return enc.AddArray(key, t)
	case string:
		enc.AddString(key, t)
	case bool:
		enc.AddBool(key, t)
	case int:
		enc.AddInt(key, t)
	case int64:
		enc.AddInt64(key, t)
	case float64:
		enc.AddFloat64(key, t)
	default:
		return enc.AddReflected(key, t)
	}
	return nil
}
