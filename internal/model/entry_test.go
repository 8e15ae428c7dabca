package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestKindValid(t *testing.T) {
	if !KindChat.Valid() || !KindMemory.Valid() {
		t.Fatal("expected chat and memory kinds to be valid")
	}
	if Kind("note").Valid() {
		t.Fatal("expected unknown kind to be invalid")
	}
	if Kind("").Valid() {
		t.Fatal("expected empty kind to be invalid")
	}
}

func TestStringListValueAndScan(t *testing.T) {
	list := StringList{"happy", "relieved", "calm"}
	value, err := list.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var restored StringList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(restored) != 3 || restored[0] != "happy" || restored[2] != "calm" {
		t.Fatalf("unexpected restored list: %v", restored)
	}
}

func TestStringListEmptyValue(t *testing.T) {
	var list StringList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != "[]" {
		t.Fatalf("expected empty JSON array, got %v", value)
	}

	var restored StringList
	if err := restored.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if len(restored) != 0 {
		t.Fatalf("expected empty list, got %v", restored)
	}
}

func TestEntryJSONShape(t *testing.T) {
	entry := Entry{
		ID:       1,
		UserID:   "u1",
		Message:  "Hello",
		Kind:     KindChat,
		Emotions: StringList{},
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, `"sessionId":null`) {
		t.Fatalf("expected null sessionId, got %s", body)
	}
	if !strings.Contains(body, `"user":"u1"`) {
		t.Fatalf("expected user field, got %s", body)
	}
	if !strings.Contains(body, `"emotions":[]`) {
		t.Fatalf("expected empty emotions array, got %s", body)
	}
	if !strings.Contains(body, `"kind":"chat"`) {
		t.Fatalf("expected kind field, got %s", body)
	}
}
