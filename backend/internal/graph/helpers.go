package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// ============================================================================
// Record Helpers
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func getBoolFromRecord(record *neo4j.Record, key string) bool {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return false
	}
	b, _ := val.(bool)
	return b
}

func getTimeFromRecord(record *neo4j.Record, key string) time.Time {
	val, ok := record.Get(key)
	if !ok {
		return time.Time{}
	}
	return toTime(val)
}

// toTime normalizes the temporal values Neo4j can hand back into a UTC
// instant. Zoned datetimes arrive as time.Time; local variants are read as UTC.
func toTime(val any) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v.UTC()
	case dbtype.LocalDateTime:
		t := time.Time(v)
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	case dbtype.Date:
		t := time.Time(v)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// userFromRecord reads the author columns every joined query returns
func userFromRecord(record *neo4j.Record) User {
	return User{
		ID:        getStringFromRecord(record, "user_id"),
		Email:     getStringFromRecord(record, "user_email"),
		FirstName: getStringFromRecord(record, "user_first_name"),
		LastName:  getStringFromRecord(record, "user_last_name"),
	}
}

func postFromRecord(record *neo4j.Record) Post {
	return Post{
		UUID:        getStringFromRecord(record, "uuid"),
		TextContent: getStringFromRecord(record, "text_content"),
		CreatedAt:   getTimeFromRecord(record, "created_at"),
	}
}

func commentFromRecord(record *neo4j.Record) Comment {
	return Comment{
		UUID:        getStringFromRecord(record, "uuid"),
		TextContent: getStringFromRecord(record, "text_content"),
		CreatedAt:   getTimeFromRecord(record, "created_at"),
	}
}
