package uefi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

const sampleListing = `BootNext: 0003
BootCurrent: 0001
Timeout: 1 seconds
BootOrder: 0001,0003,0000,2001
Boot0000* Windows Boot Manager	HD(1,GPT,6ec1)/File(\EFI\Microsoft\Boot\bootmgfw.efi)
Boot0001* ubuntu	HD(1,GPT,6ec1)/File(\EFI\ubuntu\shimx64.efi)
Boot0003  UEFI: PXE IPv4 Intel Ethernet	PciRoot(0x0)/Pci(0x1f,0x6)
Boot2001* EFI USB Device	RC
`

type fakeRunner struct {
	stdout string
	err    error
	calls  int
}

func (f *fakeRunner) Run(_ context.Context, _ []string, _ io.Reader) (process.Output, error) {
	f.calls++
	return process.Output{Stdout: f.stdout}, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseBootEntries(t *testing.T) {
	entries := ParseBootEntries(sampleListing)

	want := []struct {
		bootnum string
		name    string
	}{
		{"0000", "Windows Boot Manager"},
		{"0001", "ubuntu"},
		{"0003", "UEFI: PXE IPv4 Intel Ethernet"},
		{"2001", "EFI USB Device"},
	}
	if len(entries) != len(want) {
		t.Fatalf("parsed %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i, entry := range entries {
		if entry.ID != boot.UEFIID(want[i].bootnum) {
			t.Errorf("entry %d id = %v, want boot number %s", i, entry.ID, want[i].bootnum)
		}
		if entry.DisplayName != want[i].name {
			t.Errorf("entry %d name = %q, want %q", i, entry.DisplayName, want[i].name)
		}
	}
}

func TestParseBootEntriesIncludesInactive(t *testing.T) {
	entries := ParseBootEntries("Boot0001* Linux\nBoot0002 Windows\n")

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want both the active and inactive entry", len(entries))
	}
	if entries[0].ID != boot.UEFIID("0001") || entries[0].DisplayName != "Linux" {
		t.Errorf("active entry parsed as %v %q", entries[0].ID, entries[0].DisplayName)
	}
	if entries[1].ID != boot.UEFIID("0002") || entries[1].DisplayName != "Windows" {
		t.Errorf("inactive entry parsed as %v %q", entries[1].ID, entries[1].DisplayName)
	}
}

func TestParseBootEntriesSkipsStatusLines(t *testing.T) {
	entries := ParseBootEntries("BootCurrent: 0001\nBootOrder: 0001,0002\nTimeout: 1 seconds\n")
	if len(entries) != 0 {
		t.Errorf("status lines produced %d entries: %v", len(entries), entries)
	}
}

func TestEntriesToolFailureYieldsEmpty(t *testing.T) {
	source := NewSource(&fakeRunner{err: errors.New("efibootmgr: not found")}, discardLogger())

	entries := source.Entries(context.Background())
	if entries == nil {
		t.Fatal("expected an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("tool failure produced %d entries", len(entries))
	}
}

func TestEntries(t *testing.T) {
	runner := &fakeRunner{stdout: sampleListing}
	source := NewSource(runner, discardLogger())

	entries := source.Entries(context.Background())
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if runner.calls != 1 {
		t.Errorf("expected a single tool invocation, got %d", runner.calls)
	}
}

func TestParseStatus(t *testing.T) {
	status := ParseStatus(sampleListing)

	if got, want := status.Order.String(), "0001,0003,0000,2001"; got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
	if status.BootNext != "0003" {
		t.Errorf("boot next = %q, want %q", status.BootNext, "0003")
	}
	if status.BootCurrent != "0001" {
		t.Errorf("boot current = %q, want %q", status.BootCurrent, "0001")
	}
	if status.Timeout != 1 {
		t.Errorf("timeout = %d, want 1", status.Timeout)
	}
}

func TestParseStatusPartialOutput(t *testing.T) {
	status := ParseStatus("BootCurrent: 0001\nBoot0001* ubuntu\n")

	if status.BootNext != "" {
		t.Errorf("boot next = %q, want empty when no one-time target is pending", status.BootNext)
	}
	if len(status.Order) != 0 {
		t.Errorf("order = %v, want empty", status.Order)
	}
	if status.BootCurrent != "0001" {
		t.Errorf("boot current = %q, want %q", status.BootCurrent, "0001")
	}
}

func TestReadStatusPropagatesFailure(t *testing.T) {
	source := NewSource(&fakeRunner{err: errors.New("efibootmgr: not found")}, discardLogger())

	if _, err := source.ReadStatus(context.Background()); err == nil {
		t.Error("expected an error when the firmware state cannot be read")
	}
}

func TestCommandBuilders(t *testing.T) {
	next := BootNextArgs("0003")
	if len(next) != 3 || next[0] != Tool || next[1] != "-n" || next[2] != "0003" {
		t.Errorf("one-time boot argv = %v", next)
	}

	order := BootOrderArgs(boot.Order{"0003", "0001", "0000"})
	if len(order) != 3 || order[0] != Tool || order[1] != "-o" || order[2] != "0003,0001,0000" {
		t.Errorf("boot order argv = %v", order)
	}
}
