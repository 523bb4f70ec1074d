// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"errors"
	"testing"
)

func TestParsePortRangeSingle(t *testing.T) {
	r, err := ParsePortRange("8080")
	if err != nil {
		t.Fatalf("ParsePortRange failed: %v", err)
	}
	if !r.IsSingle() {
		t.Error("bare port did not parse as single")
	}
	if r.Cardinality() != 1 {
		t.Errorf("Cardinality() = %d, want 1", r.Cardinality())
	}
	if got := r.String(); got != "8080" {
		t.Errorf("String() = %q, want 8080", got)
	}
}

func TestParsePortRangeInterval(t *testing.T) {
	r, err := ParsePortRange("8081-8083")
	if err != nil {
		t.Fatalf("ParsePortRange failed: %v", err)
	}
	if r.IsSingle() {
		t.Error("interval parsed as single")
	}
	if r.Cardinality() != 3 {
		t.Errorf("Cardinality() = %d, want 3", r.Cardinality())
	}
	if got := r.String(); got != "8081-8083" {
		t.Errorf("String() = %q, want 8081-8083", got)
	}
}

func TestParsePortRangeMalformed(t *testing.T) {
	malformed := []string{
		"",
		"ports",
		"8080-",
		"-8080",
		"8080-8081-8082",
		"8083-8081",
		"8081-8081",
		"70000",
		"8081-70000",
	}
	for _, text := range malformed {
		_, err := ParsePortRange(text)
		if err == nil {
			t.Errorf("ParsePortRange(%q) succeeded, want error", text)
			continue
		}
		var malformedErr *MalformedRangeError
		if !errors.As(err, &malformedErr) {
			t.Errorf("ParsePortRange(%q) error %v is not *MalformedRangeError", text, err)
		}
	}
}

func TestNewPortRangeInverted(t *testing.T) {
	if _, err := NewPortRange(9000, 9000); err == nil {
		t.Error("NewPortRange(9000, 9000) succeeded, want error")
	}
	if _, err := NewPortRange(9001, 9000); err == nil {
		t.Error("NewPortRange(9001, 9000) succeeded, want error")
	}
}

func TestValidateMatchesCardinality(t *testing.T) {
	r, err := ParsePortRange("8081-8083")
	if err != nil {
		t.Fatalf("ParsePortRange failed: %v", err)
	}
	if err := r.Validate(3); err != nil {
		t.Errorf("Validate(3) failed: %v", err)
	}

	err = r.Validate(2)
	if err == nil {
		t.Fatal("Validate(2) succeeded against a 3-port range")
	}
	var mismatch *CardinalityMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error %v is not *CardinalityMismatchError", err)
	}
	if mismatch.Ports != 3 || mismatch.Count != 2 {
		t.Errorf("mismatch carries ports=%d count=%d, want ports=3 count=2", mismatch.Ports, mismatch.Count)
	}
}

func TestValidateSingle(t *testing.T) {
	r := SinglePort(8080)
	if err := r.Validate(1); err != nil {
		t.Errorf("Validate(1) failed: %v", err)
	}
	err := r.Validate(3)
	var mismatch *CardinalityMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Validate(3) error %v is not *CardinalityMismatchError", err)
	}
	if mismatch.Ports != 1 || mismatch.Count != 3 {
		t.Errorf("mismatch carries ports=%d count=%d, want ports=1 count=3", mismatch.Ports, mismatch.Count)
	}
}

func TestPortAllocation(t *testing.T) {
	r, err := ParsePortRange("8081-8083")
	if err != nil {
		t.Fatalf("ParsePortRange failed: %v", err)
	}
	for index, want := range []uint16{8081, 8082, 8083} {
		if got := r.Port(index); got != want {
			t.Errorf("Port(%d) = %d, want %d", index, got, want)
		}
	}

	single := SinglePort(9000)
	for index := 0; index < 3; index++ {
		if got := single.Port(index); got != 9000 {
			t.Errorf("single Port(%d) = %d, want 9000", index, got)
		}
	}
}
