// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type sample struct {
	Subject  string   `json:"subject"`
	Channels []string `json:"channels"`
	Values   []uint8  `json:"values,omitempty"`
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"zeta": 1, "alpha": 2, "mid": []string{"running", "exited"}}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for attempt := 0; attempt < 10; attempt++ {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("attempt %d encoded differently", attempt)
		}
	}
}

func TestJSONTagsNameFields(t *testing.T) {
	data, err := Marshal(sample{Subject: "web-1", Channels: []string{"running"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["subject"] != "web-1" {
		t.Errorf("subject = %v, want web-1 (json tag ignored?)", decoded["subject"])
	}
	if _, present := decoded["values"]; present {
		t.Error("omitempty field was encoded")
	}
}

func TestStreamEncoding(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, subject := range []string{"a", "b"} {
		if err := encoder.Encode(sample{Subject: subject}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for _, want := range []string{"a", "b"} {
		var got sample
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got.Subject != want {
			t.Errorf("decoded subject %q, want %q", got.Subject, want)
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var value sample
	if err := Unmarshal([]byte{0xff, 0xff}, &value); err == nil {
		t.Fatal("expected error decoding garbage")
	}
}
