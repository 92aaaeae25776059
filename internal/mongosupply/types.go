// SPDX-License-Identifier: MPL-2.0

package mongosupply

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"supplyloader/internal/samplegen"
	"supplyloader/pkg/datamodel"
)

// Native BSON type labels reported as DbDataType.
const (
	typeString   = "string"
	typeInt      = "int"
	typeLong     = "long"
	typeDouble   = "double"
	typeDecimal  = "decimal"
	typeBool     = "bool"
	typeDate     = "date"
	typeObjectID = "objectId"
	typeObject   = "object"
	typeArray    = "array"
	typeBinary   = "binData"
	typeNull     = "null"
)

// nativeType returns the BSON type label of a decoded value.
func nativeType(v any) string {
	switch v.(type) {
	case nil:
		return typeNull
	case string:
		return typeString
	case int32:
		return typeInt
	case int64:
		return typeLong
	case float64:
		return typeDouble
	case bson.Decimal128:
		return typeDecimal
	case bool:
		return typeBool
	case bson.DateTime, time.Time:
		return typeDate
	case bson.ObjectID:
		return typeObjectID
	case bson.D, bson.M:
		return typeObject
	case bson.A:
		return typeArray
	case bson.Binary:
		return typeBinary
	default:
		return fmt.Sprintf("%T", v)
	}
}

// NativeDataType maps a BSON type label to a DataType.
func NativeDataType(native string) datamodel.DataType {
	switch native {
	case typeString, typeObjectID:
		return datamodel.String
	case typeInt, typeLong:
		return datamodel.Int
	case typeDouble, typeDecimal:
		return datamodel.Double
	case typeBool:
		return datamodel.Boolean
	case typeDate:
		return datamodel.DateTime
	default:
		return datamodel.Unknown
	}
}

// formatValue renders a decoded value as a sample string.
func formatValue(v any) string {
	switch x := v.(type) {
	case bson.DateTime:
		return samplegen.Format(x.Time())
	case bson.ObjectID:
		return x.Hex()
	default:
		return samplegen.Format(v)
	}
}

// document builds a BSON document from parallel field and value slices.
// Nil values are left out so absent fields stay absent.
func document(fields []string, values []any) bson.D {
	doc := make(bson.D, 0, len(fields))
	for i, f := range fields {
		if values[i] == nil {
			continue
		}
		doc = append(doc, bson.E{Key: f, Value: values[i]})
	}
	return doc
}

// fieldSet accumulates top-level fields in first-seen order. A field's type
// is taken from its first non-null value.
type fieldSet struct {
	names []string
	types map[string]string
}

func newFieldSet() *fieldSet {
	return &fieldSet{types: make(map[string]string)}
}

func (f *fieldSet) add(doc bson.D) {
	for _, e := range doc {
		current, seen := f.types[e.Key]
		if !seen {
			f.names = append(f.names, e.Key)
		}
		if !seen || current == typeNull {
			f.types[e.Key] = nativeType(e.Value)
		}
	}
}
