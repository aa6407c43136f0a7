package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/festival/api/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// convertSurrealID renders a SurrealDB record id as "table:id"
func convertSurrealID(id interface{}) string {
	// Already a string
	if str, ok := id.(string); ok {
		return str
	}

	// Handle models.RecordID from SurrealDB Go client
	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	// Handle map format: {"tb": "user", "id": {"String": "demo"}} or similar
	if m, ok := id.(map[string]interface{}); ok {
		tb := ""
		idPart := ""

		if t, ok := m["tb"].(string); ok {
			tb = t
		} else if t, ok := m["Table"].(string); ok {
			tb = t
		}

		if idVal, ok := m["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := m["ID"]; ok {
			idPart = extractIDValue(idVal)
		}

		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	return fmt.Sprintf("%v", id)
}

func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// normalizeValue rewrites driver specific values (record ids, datetimes)
// into plain JSON friendly values, recursing into fetched sub documents.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.RecordID, *models.RecordID:
		return convertSurrealID(t)
	case models.CustomDateTime:
		return t.Time.UTC().Format(time.RFC3339Nano)
	case *models.CustomDateTime:
		if t == nil {
			return nil
		}
		return t.Time.UTC().Format(time.RFC3339Nano)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if k == "id" {
				out[k] = convertSurrealID(val)
				continue
			}
			out[k] = normalizeValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	}
	return v
}

// statementRecords returns the rows produced by the i-th statement
func statementRecords(results []interface{}, i int) []map[string]interface{} {
	if i >= len(results) {
		return nil
	}

	var rows []interface{}
	switch resp := results[i].(type) {
	case map[string]interface{}:
		switch r := resp["result"].(type) {
		case []interface{}:
			rows = r
		case map[string]interface{}:
			rows = []interface{}{r}
		}
	case []interface{}:
		rows = resp
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// decodeRecord maps a raw record onto out via its json tags
func decodeRecord(data map[string]interface{}, out interface{}) error {
	if data == nil {
		return database.ErrNotFound
	}
	jsonBytes, err := json.Marshal(normalizeValue(data))
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, out)
}

// decodeAll decodes every row of a statement into a slice of T
func decodeAll[T any](rows []map[string]interface{}) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := decodeRecord(row, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// recordID builds a typed record id from "table:id" or a bare id
func recordID(table, id string) models.RecordID {
	if tb, key, ok := strings.Cut(id, ":"); ok && tb == table {
		return models.RecordID{Table: table, ID: key}
	}
	return models.RecordID{Table: table, ID: id}
}

// recordIDs never returns nil so array fields are never written as NULL
func recordIDs(table string, ids []string) []models.RecordID {
	out := make([]models.RecordID, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, recordID(table, id))
	}
	return out
}

// isNotFound reports whether err means the record does not exist
func isNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// stringOrNone passes an optional value as NONE when empty
func stringOrNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
