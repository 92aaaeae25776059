// SPDX-License-Identifier: MPL-2.0

// Package samplegen produces synthetic values for sample loading. Values only
// need to be valid for the declared DataType; no distribution is promised.
package samplegen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"supplyloader/pkg/datamodel"
)

const (
	maxInt          = 1_000_000
	maxDouble       = 100_000.0
	dateRangeInDays = 365
)

// epoch anchors generated DateTime values so seeded output is reproducible.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type (
	// Generator produces values from a seeded PCG source. It is not safe for
	// concurrent use.
	Generator struct {
		rnd *rand.Rand
	}

	randReader struct {
		rnd *rand.Rand
	}
)

// New creates a Generator. Equal seeds produce equal value sequences.
func New(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Value returns a value of the Go type matching dt: string, int64, bool,
// float64 or time.Time. Unknown types get a string.
func (g *Generator) Value(dt datamodel.DataType) any {
	switch dt {
	case datamodel.Int:
		return g.rnd.Int64N(maxInt)
	case datamodel.Boolean:
		return g.rnd.IntN(2) == 1
	case datamodel.Double:
		return math.Round(g.rnd.Float64()*maxDouble*100) / 100
	case datamodel.DateTime:
		offset := time.Duration(g.rnd.Int64N(dateRangeInDays*24*3600)) * time.Second
		return epoch.Add(offset)
	default:
		return g.uuid().String()
	}
}

// Row returns one value per entity, in entity order.
func (g *Generator) Row(entities []*datamodel.DataEntity) []any {
	row := make([]any, len(entities))
	for i, e := range entities {
		row[i] = g.Value(e.DataType)
	}
	return row
}

// Format renders a value the way collectors report samples. Generated
// values and the scalar types database drivers scan into share one form.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func (g *Generator) uuid() uuid.UUID {
	id, err := uuid.NewRandomFromReader(randReader{rnd: g.rnd})
	if err != nil {
		return uuid.New()
	}
	return id
}

func (r randReader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], r.rnd.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
