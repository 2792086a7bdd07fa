// Package boot defines the shared data model for boot entries discovered
// across the supported backing stores (GRUB menu entries, UEFI NVRAM boot
// variables, and the Windows BCD store).
package boot

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifies the backing store that a boot entry was discovered from
type Store string

const (
	// A GRUB menu entry, identified by its zero-based position in grub.cfg
	GRUB Store = "grub"

	// A UEFI NVRAM boot variable, identified by its 4-hex-digit boot number
	UEFI Store = "uefi"

	// A Windows BCD store entry, identified by its description string
	BCD Store = "bcd"
)

// ID identifies a boot entry within its backing store's namespace. The store
// tag is part of the identity: a GRUB entry "0" and a UEFI entry "0000" are
// distinct values that never compare equal.
type ID struct {
	Store Store
	Value string
}

// GRUBID builds the identifier for the GRUB menu entry at the given
// zero-based ordinal position.
func GRUBID(ordinal int) ID {
	return ID{Store: GRUB, Value: strconv.Itoa(ordinal)}
}

// UEFIID builds the identifier for the UEFI boot variable with the given
// 4-hex-digit boot number.
func UEFIID(bootnum string) ID {
	return ID{Store: UEFI, Value: bootnum}
}

// BCDID builds the identifier for a BCD entry. The BCD listing exposes no
// separate identifier, so the description string is the identity.
func BCDID(description string) ID {
	return ID{Store: BCD, Value: description}
}

// Returns the store-qualified form used in logs and error messages
func (id ID) String() string {
	return fmt.Sprintf("%s:%s", id.Store, id.Value)
}

// Represents an individual boot entry
type Entry struct {

	// The store-scoped identifier for the boot entry
	ID ID

	// The human-readable label extracted from the source tool's output
	DisplayName string

	// Whether the entry is the current default for its backing store
	IsDefault bool
}

// Order is the UEFI firmware boot priority: an ordered sequence of
// 4-hex-digit boot numbers.
type Order []string

// MoveToFront returns a new order with the given boot number first and the
// relative order of all remaining entries preserved. No entries are dropped
// and no duplicates are introduced; a boot number not present in the current
// order is prepended.
func (o Order) MoveToFront(bootnum string) Order {
	reordered := make(Order, 0, len(o)+1)
	reordered = append(reordered, bootnum)
	for _, existing := range o {
		if existing != bootnum {
			reordered = append(reordered, existing)
		}
	}
	return reordered
}

// Permutes reports whether the other order contains exactly the same boot
// numbers as this one: nothing dropped, nothing duplicated, nothing invented.
func (o Order) Permutes(other Order) bool {
	if len(o) != len(other) {
		return false
	}
	counts := make(map[string]int, len(o))
	for _, bootnum := range o {
		counts[bootnum]++
	}
	for _, bootnum := range other {
		counts[bootnum]--
		if counts[bootnum] < 0 {
			return false
		}
	}
	return true
}

// Returns the comma-joined form accepted by the firmware boot-order tool
func (o Order) String() string {
	return strings.Join(o, ",")
}
