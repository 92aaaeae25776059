// SPDX-License-Identifier: MPL-2.0

package mongosupply

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"supplyloader/pkg/datamodel"
)

func TestNativeType(t *testing.T) {
	t.Parallel()

	oid := bson.NewObjectID()
	tests := []struct {
		name   string
		value  any
		native string
		want   datamodel.DataType
	}{
		{name: "string", value: "x", native: "string", want: datamodel.String},
		{name: "object id", value: oid, native: "objectId", want: datamodel.String},
		{name: "int32", value: int32(4), native: "int", want: datamodel.Int},
		{name: "int64", value: int64(4), native: "long", want: datamodel.Int},
		{name: "double", value: 1.5, native: "double", want: datamodel.Double},
		{name: "bool", value: true, native: "bool", want: datamodel.Boolean},
		{name: "date", value: bson.NewDateTimeFromTime(time.Now()), native: "date", want: datamodel.DateTime},
		{name: "embedded", value: bson.D{{Key: "a", Value: 1}}, native: "object", want: datamodel.Unknown},
		{name: "array", value: bson.A{1, 2}, native: "array", want: datamodel.Unknown},
		{name: "null", value: nil, native: "null", want: datamodel.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			native := nativeType(tt.value)
			if native != tt.native {
				t.Errorf("nativeType() = %q, want %q", native, tt.native)
			}
			if got := NativeDataType(native); got != tt.want {
				t.Errorf("NativeDataType(%q) = %v, want %v", native, got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, time.May, 4, 12, 0, 0, 0, time.UTC)
	oid, err := bson.ObjectIDFromHex("65f0a1b2c3d4e5f601234567")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		value any
		want  string
	}{
		{value: "plain", want: "plain"},
		{value: int32(-3), want: "-3"},
		{value: int64(9000000000), want: "9000000000"},
		{value: 2.5, want: "2.5"},
		{value: false, want: "false"},
		{value: bson.NewDateTimeFromTime(when), want: "2024-05-04T12:00:00Z"},
		{value: oid, want: "65f0a1b2c3d4e5f601234567"},
		{value: nil, want: ""},
	}
	for _, tt := range tests {
		if got := formatValue(tt.value); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDocument_SkipsNil(t *testing.T) {
	t.Parallel()

	doc := document([]string{"id", "maybe_text", "maybe_number"}, []any{int64(3), "present", nil})
	if len(doc) != 2 || doc[0].Key != "id" || doc[1].Key != "maybe_text" {
		t.Errorf("document() = %v", doc)
	}
}

func TestFieldSet(t *testing.T) {
	t.Parallel()

	fs := newFieldSet()
	fs.add(bson.D{{Key: "_id", Value: bson.NewObjectID()}, {Key: "note", Value: nil}})
	fs.add(bson.D{{Key: "qty", Value: int32(2)}, {Key: "note", Value: "late"}})
	fs.add(bson.D{{Key: "qty", Value: "two"}})

	want := []string{"_id", "note", "qty"}
	if len(fs.names) != len(want) {
		t.Fatalf("names = %v, want %v", fs.names, want)
	}
	for i, n := range want {
		if fs.names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, fs.names[i], n)
		}
	}
	if fs.types["note"] != "string" {
		t.Errorf("note type = %q, want first non-null type string", fs.types["note"])
	}
	if fs.types["qty"] != "int" {
		t.Errorf("qty type = %q, want first seen type int", fs.types["qty"])
	}
}

func TestDatabaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "mongodb://localhost:27017/supply", want: "supply"},
		{uri: "mongodb://user:pw@localhost:27017/orders?authSource=admin", want: "orders"},
		{uri: "mongodb://localhost:27017", want: DefaultDatabase},
		{uri: "postgres://localhost/x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := DatabaseName(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("DatabaseName(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DatabaseName(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestLoadSamples_Rejects(t *testing.T) {
	t.Parallel()

	container := datamodel.NewDataContainer("mongodb://127.0.0.1:1/never")
	a := datamodel.NewDataCollection(container, "a")
	b := datamodel.NewDataCollection(container, "b")
	l := NewLoader(datamodel.Options{}, WithSeed(3))

	if err := l.LoadSamples(t.Context(), nil, 1); !errors.Is(err, ErrNoEntities) {
		t.Errorf("empty batch error = %v, want ErrNoEntities", err)
	}
	mixed := []*datamodel.DataEntity{
		datamodel.NewDataEntity("x", datamodel.Int, "", container, a),
		datamodel.NewDataEntity("y", datamodel.Int, "", container, b),
	}
	if err := l.LoadSamples(t.Context(), mixed, 1); !errors.Is(err, datamodel.ErrMixedCollections) {
		t.Errorf("mixed batch error = %v, want ErrMixedCollections", err)
	}
}

func TestConnect_NoConnectionString(t *testing.T) {
	t.Parallel()

	c := NewCollector(datamodel.Options{})
	if _, err := c.GetSchema(t.Context(), datamodel.NewDataContainer("")); !errors.Is(err, ErrNoConnection) {
		t.Errorf("GetSchema() error = %v, want ErrNoConnection", err)
	}
}
