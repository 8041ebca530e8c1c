package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nestscout/nestscout/internal/store"
)

// Upsert writes a property document as a hash under the index prefix.
func (s *Store) Upsert(ctx context.Context, doc store.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if len(doc.Vector) == 0 {
		return fmt.Errorf("document %s has no vector", doc.ID)
	}

	cmd := s.client.B().Hset().Key(s.docKey(doc.ID)).FieldValue().
		FieldValue("content", doc.Content).
		FieldValue("vector", vectorToBytes(doc.Vector))
	for k, v := range doc.Fields {
		cmd = cmd.FieldValue(k, fieldToString(v))
	}

	if err := s.client.Do(ctx, cmd.Build()).Error(); err != nil {
		return fmt.Errorf("upsert %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a property document.
func (s *Store) Delete(ctx context.Context, id string) error {
	cmd := s.client.B().Del().Key(s.docKey(id)).Build()
	count, err := s.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("delete %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func fieldToString(v any) string {
	switch fv := v.(type) {
	case string:
		return fv
	case int:
		return strconv.Itoa(fv)
	case int64:
		return strconv.FormatInt(fv, 10)
	case float64:
		return strconv.FormatFloat(fv, 'g', -1, 64)
	case []string:
		return strings.Join(fv, ",")
	default:
		return fmt.Sprintf("%v", fv)
	}
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
