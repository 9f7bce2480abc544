package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type fakeDevice struct {
	name    string
	devPath string // relative to the sysfs root
	attrs   map[string]string
}

// fakeSysfs lays out devices under <tmp>/devices and links them from
// <tmp>/class/net the way the kernel does, returning the class directory.
func fakeSysfs(t *testing.T, devices []fakeDevice) string {
	t.Helper()

	root := t.TempDir()
	classDir := filepath.Join(root, "class", "net")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, d := range devices {
		devDir := filepath.Join(root, d.devPath)
		if err := os.MkdirAll(devDir, 0o755); err != nil {
			t.Fatal(err)
		}
		for attr, value := range d.attrs {
			if err := os.WriteFile(filepath.Join(devDir, attr), []byte(value+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.Symlink(filepath.Join("..", "..", d.devPath), filepath.Join(classDir, d.name)); err != nil {
			t.Fatal(err)
		}
	}
	return classDir
}

func testDevices() []fakeDevice {
	return []fakeDevice{
		{"eth0", "devices/pci0000:00/0000:00:19.0/net/eth0", map[string]string{"type": "1", "carrier": "1"}},
		{"eth1", "devices/pci0000:00/0000:00:1c.0/net/eth1", map[string]string{"type": "1", "carrier": "1"}},
		{"eth2", "devices/pci0000:00/0000:00:1d.0/net/eth2", map[string]string{"type": "1", "carrier": "0"}},
		{"eth3", "devices/pci0000:00/0000:00:1e.0/net/eth3", map[string]string{"type": "1"}},
		{"lo", "devices/virtual/net/lo", map[string]string{"type": "772", "carrier": "1"}},
		{"wwan0", "devices/pci0000:00/0000:00:1f.0/net/wwan0", map[string]string{"type": "65534", "carrier": "1"}},
		{"br0", "devices/virtual/net/br0", map[string]string{"type": "1", "carrier": "1"}},
	}
}

func TestListInterfaces_PhysicalEthernetWithCarrier(t *testing.T) {
	root := fakeSysfs(t, testDevices())

	got := listInterfaces(root, false)
	expect := []string{"eth0", "eth1"}
	if !reflect.DeepEqual(got, expect) {
		t.Errorf("expected %v, got %v", expect, got)
	}
}

func TestListInterfaces_IncludeVirtual(t *testing.T) {
	root := fakeSysfs(t, testDevices())

	got := listInterfaces(root, true)
	expect := []string{"br0", "eth0", "eth1"}
	if !reflect.DeepEqual(got, expect) {
		t.Errorf("expected %v, got %v", expect, got)
	}
}

func TestListInterfaces_EveryResultPassesPredicates(t *testing.T) {
	root := fakeSysfs(t, testDevices())

	for _, name := range listInterfaces(root, true) {
		linkType, err := readFirstLine(filepath.Join(root, name, "type"))
		if err != nil || linkType != linkTypeEther {
			t.Errorf("%s: link type %q (%v)", name, linkType, err)
		}
		carrier, err := readFirstLine(filepath.Join(root, name, "carrier"))
		if err != nil || carrier != carrierUp {
			t.Errorf("%s: carrier %q (%v)", name, carrier, err)
		}
	}
}

func TestListInterfaces_SkipsPlainFiles(t *testing.T) {
	root := fakeSysfs(t, testDevices()[:1])
	if err := os.WriteFile(filepath.Join(root, "bonding_masters"), []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := listInterfaces(root, false)
	if !reflect.DeepEqual(got, []string{"eth0"}) {
		t.Errorf("expected [eth0], got %v", got)
	}
}

func TestListInterfaces_MissingDirectory(t *testing.T) {
	got := listInterfaces(filepath.Join(t.TempDir(), "nope"), false)
	if len(got) != 0 {
		t.Errorf("expected no interfaces, got %v", got)
	}
}

func TestIsVirtualNIC(t *testing.T) {
	root := fakeSysfs(t, testDevices())

	if isVirtualNIC(root, "eth0") {
		t.Error("eth0 should be physical")
	}
	if !isVirtualNIC(root, "br0") {
		t.Error("br0 should be virtual")
	}
	if isVirtualNIC(root, "missing") {
		t.Error("unreadable link should not be reported as virtual")
	}
}
