package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const reportHeader = "Found VLANs:"

// Report collects distinct VLAN IDs per interface. It is shared by all
// observers of a session, every access goes through mu.
type Report struct {
	mu    sync.Mutex
	vlans map[string]map[uint16]struct{}
}

func NewReport() *Report {
	return &Report{
		vlans: make(map[string]map[uint16]struct{}),
	}
}

// Add records id for iface and reports whether it was not seen before.
func (r *Report) Add(iface string, id uint16) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, ok := r.vlans[iface]
	if !ok {
		ids = make(map[uint16]struct{})
		r.vlans[iface] = ids
	}
	if _, ok := ids[id]; ok {
		return false
	}
	ids[id] = struct{}{}
	return true
}

// Interfaces returns the names of interfaces with at least one VLAN, sorted.
func (r *Report) Interfaces() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.vlans))
	for name := range r.vlans {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// VLANs returns the VLAN IDs seen on iface in ascending order.
func (r *Report) VLANs(iface string) []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedIDs(r.vlans[iface])
}

// Snapshot returns a copy of the report with sorted VLAN IDs.
func (r *Report) Snapshot() map[string][]uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]uint16, len(r.vlans))
	for name, ids := range r.vlans {
		out[name] = sortedIDs(ids)
	}
	return out
}

func sortedIDs(ids map[uint16]struct{}) []uint16 {
	out := make([]uint16, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})
	return out
}

// render writes the report to w in the given format (text, json or yaml).
func render(w io.Writer, r *Report, format string) error {
	switch format {
	case formatText, "":
		return renderText(w, r)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Snapshot())
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r.Snapshot())
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(w io.Writer, r *Report) error {
	var sb strings.Builder
	sb.WriteString(reportHeader)
	sb.WriteByte('\n')

	snapshot := r.Snapshot()
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ids := snapshot[name]
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(int(id))
		}
		fmt.Fprintf(&sb, "%s: %s\n", name, strings.Join(parts, " "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
