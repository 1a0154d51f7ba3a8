package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// devDir is where ListPorts looks for device nodes
var devDir = "/dev"

// sysClassTTY is the sysfs directory used to enrich USB port information
var sysClassTTY = "/sys/class/tty"

// Regular expressions for different types of serial devices
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`),          // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`),          // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),            // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`),          // ARM/Raspberry Pi serial
	regexp.MustCompile(`^ttymxc\d+$`),          // i.MX serial ports
	regexp.MustCompile(`^ttyO\d+$`),            // OMAP serial ports
	regexp.MustCompile(`^ttySAC\d+$`),          // Samsung serial ports
	regexp.MustCompile(`^ttyTHS\d+$`),          // Tegra serial ports
	regexp.MustCompile(`^cu\.usbserial.*$`),    // macOS FTDI/Prolific
	regexp.MustCompile(`^cu\.wchusbserial.*$`), // macOS CH34x
	regexp.MustCompile(`^cu\.usbmodem.*$`),     // macOS CDC/ACM
}

// Exclude patterns for virtual terminals and other non-serial devices
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty\d+$`),  // Virtual terminals (tty1, tty2, etc.)
	regexp.MustCompile(`^console$`), // Console
	regexp.MustCompile(`^ptmx$`),    // Pseudo-terminal multiplexer
	regexp.MustCompile(`^pty.*$`),   // Pseudo-terminals
	regexp.MustCompile(`^pts/.*$`),  // Pseudo-terminal slaves
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// isSerialName reports whether a /dev entry name looks like a serial port
func isSerialName(name string) bool {
	return !matchesAny(excludePatterns, name) && matchesAny(serialPatterns, name)
}

// ListPorts returns a list of available serial ports on the system
// Filters for communication-capable devices and excludes virtual terminals
func ListPorts() ([]string, error) {
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if !isSerialName(name) {
			continue
		}

		fullPath := filepath.Join(devDir, name)
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	// USB adapters first: the relay board hangs off one, built-in UARTs rarely matter
	sort.SliceStable(ports, func(i, j int) bool {
		ui, uj := isUSBName(filepath.Base(ports[i])), isUSBName(filepath.Base(ports[j]))
		if ui != uj {
			return ui
		}
		return ports[i] < ports[j]
	})

	return ports, nil
}

// FirstPort returns the first port ListPorts finds, or ErrNoPorts
func FirstPort() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", ErrNoPorts
	}
	return ports[0], nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func isUSBName(name string) bool {
	return strings.HasPrefix(name, "ttyUSB") ||
		strings.HasPrefix(name, "ttyACM") ||
		strings.HasPrefix(name, "cu.")
}

// PortInfo describes a serial port and, for USB adapters, the device behind it
type PortInfo struct {
	Name         string
	Path         string
	Description  string
	VendorID     string
	ProductID    string
	SerialNumber string
	Manufacturer string
	Product      string
}

// IsUSB reports whether USB metadata was found for the port
func (i *PortInfo) IsUSB() bool {
	return i.VendorID != "" || i.ProductID != ""
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
	}

	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		enrichUSBInfo(info)
	}

	return info, nil
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	case strings.HasPrefix(name, "cu."):
		return "USB Serial Port"
	default:
		return "Serial Port"
	}
}

// enrichUSBInfo walks up from /sys/class/tty/<name>/device to the USB device
// directory (the first ancestor carrying idVendor) and copies its attributes.
func enrichUSBInfo(info *PortInfo) {
	dir, err := filepath.EvalSymlinks(filepath.Join(sysClassTTY, info.Name, "device"))
	if err != nil {
		return
	}

	for i := 0; i < 4 && dir != "/" && dir != "."; i++ {
		if vendor := readSysfsAttr(dir, "idVendor"); vendor != "" {
			info.VendorID = vendor
			info.ProductID = readSysfsAttr(dir, "idProduct")
			info.SerialNumber = readSysfsAttr(dir, "serial")
			info.Manufacturer = readSysfsAttr(dir, "manufacturer")
			info.Product = readSysfsAttr(dir, "product")
			return
		}
		dir = filepath.Dir(dir)
	}
}

func readSysfsAttr(dir, attr string) string {
	data, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
