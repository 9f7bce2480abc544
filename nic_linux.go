package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	sysfsPath        = "/sys/class/net"
	sysfsVirtualDevs = "devices/virtual/"

	carrierUp = "1"
)

var linkTypeEther = strconv.Itoa(unix.ARPHRD_ETHER)

// listInterfaces returns the names of Ethernet devices under root that have
// a carrier. Devices whose attributes can't be read are skipped. Failure to
// read root itself is logged and yields no interfaces.
func listInterfaces(root string, includeVirtual bool) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		log.WithError(err).WithField("path", root).Error("could not open device directory")
		return nil
	}

	ifaces := make([]string, 0, len(entries))
	for _, entry := range entries {
		// every device in /sys/class/net is a link to its /sys/devices node
		if entry.Type()&fs.ModeSymlink == 0 {
			continue
		}

		name := entry.Name()
		ok, err := isActiveEthernet(root, name)
		if err != nil {
			log.WithFields(logrus.Fields{
				"interface": name,
				"error":     err,
			}).Debug("skipping device")
			continue
		}
		if !ok {
			continue
		}

		if !includeVirtual && isVirtualNIC(root, name) {
			log.WithField("interface", name).Debug("skipping virtual device")
			continue
		}
		ifaces = append(ifaces, name)
	}

	sort.Strings(ifaces)
	return ifaces
}

func isActiveEthernet(root, name string) (bool, error) {
	linkType, err := readFirstLine(filepath.Join(root, name, "type"))
	if err != nil {
		return false, err
	}
	if linkType != linkTypeEther {
		return false, nil
	}

	// reading carrier of an administratively down link fails with EINVAL
	carrier, err := readFirstLine(filepath.Join(root, name, "carrier"))
	if err != nil {
		return false, err
	}
	return carrier == carrierUp, nil
}

// isVirtualNIC reports whether the device node lives under /sys/devices/virtual
// (bridges, veth, bonds, tunnels with an Ethernet link type).
func isVirtualNIC(root, name string) bool {
	dstPath, err := os.Readlink(filepath.Join(root, name))
	if err != nil {
		return false
	}

	if !filepath.IsAbs(dstPath) {
		dstPath = filepath.Join(root, dstPath)
	}
	return strings.Contains(filepath.ToSlash(filepath.Clean(dstPath))+"/", "/"+sysfsVirtualDevs)
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	if s.Scan() {
		return strings.TrimSpace(s.Text()), nil
	}
	if err := s.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return "", nil
}
