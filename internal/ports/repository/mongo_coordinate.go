package repository

import (
	"math"
	"strings"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// coordinate is written as a double or null. On read it also accepts
// integers and the numeric strings stored by older deployments; anything
// else decodes as null.
type coordinate struct {
	value *float64
}

func (c coordinate) IsZero() bool { return c.value == nil }

func (c coordinate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if c.value == nil {
		return bson.TypeNull, nil, nil
	}
	return bson.TypeDouble, bsoncore.AppendDouble(nil, *c.value), nil
}

func (c *coordinate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	c.value = nil
	raw := bson.RawValue{Type: t, Value: data}

	var v float64
	switch t {
	case bson.TypeDouble:
		v = raw.Double()
	case bson.TypeInt32:
		v = float64(raw.Int32())
	case bson.TypeInt64:
		v = float64(raw.Int64())
	case bson.TypeString:
		s := strings.TrimSpace(raw.StringValue())
		parsed, err := cast.ToFloat64E(s)
		if s == "" || err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	c.value = &v
	return nil
}
