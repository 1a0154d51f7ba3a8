package serial

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	if err != nil {
		t.Skipf("ListPorts unavailable: %v", err)
	}

	for _, port := range ports {
		if !strings.HasPrefix(port, "/dev/") {
			t.Errorf("Port path doesn't start with /dev/: %s", port)
		}

		if !isCharacterDevice(port) {
			t.Errorf("Port is not a character device: %s", port)
		}
	}
}

func TestListPortsEmptyDir(t *testing.T) {
	old := devDir
	devDir = t.TempDir()
	t.Cleanup(func() { devDir = old })

	// Regular files never count, even with a serial-looking name
	if err := os.WriteFile(filepath.Join(devDir, "ttyUSB0"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}
	if len(ports) != 0 {
		t.Errorf("expected no ports, got %v", ports)
	}

	if _, err := FirstPort(); err != ErrNoPorts {
		t.Errorf("FirstPort() error = %v, want ErrNoPorts", err)
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},     // Should exist and be a character device
		{"/dev/zero", true},     // Should exist and be a character device
		{os.TempDir(), false},   // Directory, not character device
		{"/nonexistent", false}, // Doesn't exist
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"cu.usbserial-1410", "USB Serial Port"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		result := getPortDescription(test.name)
		if result != test.expected {
			t.Errorf("getPortDescription(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestGetPortInfo(t *testing.T) {
	// /dev/null always exists and is a character device
	info, err := GetPortInfo("/dev/null")
	if err != nil {
		t.Fatalf("GetPortInfo failed for /dev/null: %v", err)
	}

	if info.Name != "null" {
		t.Errorf("Expected name 'null', got '%s'", info.Name)
	}
	if info.Path != "/dev/null" {
		t.Errorf("Expected path '/dev/null', got '%s'", info.Path)
	}
	if info.Description == "" {
		t.Error("Description should not be empty")
	}
	if info.IsUSB() {
		t.Error("/dev/null should not carry USB metadata")
	}

	_, err = GetPortInfo("/dev/nonexistent")
	if err != ErrDeviceNotFound {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

// TestPortFiltering tests that we correctly filter different types of devices
func TestPortFiltering(t *testing.T) {
	testDevices := []struct {
		name        string
		shouldMatch bool
	}{
		{"ttyUSB0", true},
		{"ttyUSB1", true},
		{"ttyACM0", true},
		{"ttyS0", true},
		{"ttyAMA0", true},
		{"cu.usbserial-1410", true},
		{"cu.wchusbserial1420", true},
		{"tty1", false},    // Virtual terminal - should be excluded
		{"tty2", false},    // Virtual terminal - should be excluded
		{"console", false}, // Console - should be excluded
		{"ptmx", false},    // Pseudo-terminal - should be excluded
		{"ptyp0", false},   // Pseudo-terminal - should be excluded
		{"random", false},  // Not a serial device
		{"urandom", false}, // Not a serial device
		{"cu.Bluetooth-Incoming-Port", false},
	}

	for _, device := range testDevices {
		if got := isSerialName(device.name); got != device.shouldMatch {
			t.Errorf("isSerialName(%s) = %v, want %v", device.name, got, device.shouldMatch)
		}
	}
}

func TestEnrichUSBInfo(t *testing.T) {
	root := t.TempDir()

	// /sys/bus/usb/devices/1-1 holds the attributes, the tty interface sits below it
	usbDev := filepath.Join(root, "devices", "1-1")
	iface := filepath.Join(usbDev, "1-1:1.0", "ttyUSB0")
	if err := os.MkdirAll(iface, 0o755); err != nil {
		t.Fatal(err)
	}
	attrs := map[string]string{
		"idVendor":     "1a86\n",
		"idProduct":    "7523\n",
		"product":      "USB Serial\n",
		"manufacturer": "QinHeng\n",
	}
	for name, value := range attrs {
		if err := os.WriteFile(filepath.Join(usbDev, name), []byte(value), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	classDir := filepath.Join(root, "class", "tty", "ttyUSB0")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(iface, filepath.Join(classDir, "device")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	old := sysClassTTY
	sysClassTTY = filepath.Join(root, "class", "tty")
	t.Cleanup(func() { sysClassTTY = old })

	info := &PortInfo{Name: "ttyUSB0"}
	enrichUSBInfo(info)

	if info.VendorID != "1a86" || info.ProductID != "7523" {
		t.Errorf("VID:PID = %s:%s, want 1a86:7523", info.VendorID, info.ProductID)
	}
	if info.Product != "USB Serial" || info.Manufacturer != "QinHeng" {
		t.Errorf("product/manufacturer = %q/%q", info.Product, info.Manufacturer)
	}
	if info.SerialNumber != "" {
		t.Errorf("SerialNumber = %q, want empty", info.SerialNumber)
	}
	if !info.IsUSB() {
		t.Error("IsUSB() = false after enrichment")
	}
}
