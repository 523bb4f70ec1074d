// Copyright 2026 The Chunkmesh Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"strconv"
	"strings"
)

// PortRange is either a single fixed port or an inclusive contiguous
// port interval. It is immutable once constructed and validates itself
// against a required instance count before any allocation happens.
type PortRange struct {
	start uint16
	end   uint16
}

// MalformedRangeError reports port range text that could not be
// parsed, or an interval whose end does not exceed its start.
type MalformedRangeError struct {
	// Text is the rejected input.
	Text string

	// Reason describes which rule the input broke.
	Reason string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("malformed port range %q: %s", e.Text, e.Reason)
}

// CardinalityMismatchError reports a range whose port count does not
// match the requested instance count.
type CardinalityMismatchError struct {
	// Ports is the number of ports the range provides.
	Ports int

	// Count is the requested instance count.
	Count int
}

func (e *CardinalityMismatchError) Error() string {
	return fmt.Sprintf("the count (%d) does not match the number of ports (%d)", e.Count, e.Ports)
}

// SinglePort returns a PortRange holding one fixed port.
func SinglePort(port uint16) PortRange {
	return PortRange{start: port, end: port}
}

// NewPortRange returns the inclusive interval [start, end]. End must
// be strictly greater than start; a one-port interval is expressed as
// [SinglePort].
func NewPortRange(start, end uint16) (PortRange, error) {
	if start >= end {
		return PortRange{}, &MalformedRangeError{
			Text:   fmt.Sprintf("%d-%d", start, end),
			Reason: "end port must be greater than start port",
		}
	}
	return PortRange{start: start, end: end}, nil
}

// ParsePortRange parses either a bare port number ("8080") or an
// inclusive interval ("8081-8083").
func ParsePortRange(text string) (PortRange, error) {
	if port, err := strconv.ParseUint(text, 10, 16); err == nil {
		return SinglePort(uint16(port)), nil
	}

	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return PortRange{}, &MalformedRangeError{Text: text, Reason: "must be a port or 'start-end'"}
	}
	start, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return PortRange{}, &MalformedRangeError{Text: text, Reason: fmt.Sprintf("start port: %v", err)}
	}
	end, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return PortRange{}, &MalformedRangeError{Text: text, Reason: fmt.Sprintf("end port: %v", err)}
	}
	if start >= end {
		return PortRange{}, &MalformedRangeError{Text: text, Reason: "end port must be greater than start port"}
	}
	return PortRange{start: uint16(start), end: uint16(end)}, nil
}

// IsSingle reports whether the range holds exactly one fixed port.
func (r PortRange) IsSingle() bool { return r.start == r.end }

// Cardinality returns the number of ports in the range.
func (r PortRange) Cardinality() int { return int(r.end) - int(r.start) + 1 }

// Validate checks the range against a required instance count. It
// succeeds iff the count equals the range's cardinality, and fails
// with *CardinalityMismatchError carrying both numbers otherwise.
// Validate is pure; it never mutates the range.
func (r PortRange) Validate(count int) error {
	if ports := r.Cardinality(); count != ports {
		return &CardinalityMismatchError{Ports: ports, Count: count}
	}
	return nil
}

// Port returns the port allocated to the given instance index: the
// index-th port of the interval. A single range yields its one port
// for every index — reusing one port across instances is a caller
// responsibility to avoid, not an allocation error. Bounds for
// interval ranges are guaranteed by a prior Validate call.
func (r PortRange) Port(index int) uint16 {
	if r.IsSingle() {
		return r.start
	}
	return r.start + uint16(index)
}

// String renders the range in the form ParsePortRange accepts.
func (r PortRange) String() string {
	if r.IsSingle() {
		return strconv.Itoa(int(r.start))
	}
	return fmt.Sprintf("%d-%d", r.start, r.end)
}
