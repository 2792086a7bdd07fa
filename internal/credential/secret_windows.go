package credential

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Secret holds the elevation password in memory that is locked against
// swapping and zeroed on close. The backing memory is allocated via
// VirtualAlloc outside the Go heap, so the garbage collector never copies
// or relocates it.
type Secret struct {
	mu      sync.Mutex
	address uintptr
	data    []byte
	length  int
	closed  bool
}

// New allocates a locked secret buffer of the given size. The caller must
// call Close when the secret is no longer needed.
func New(size int) (*Secret, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret buffer size must be positive, got %d", size)
	}

	// Allocate committed memory outside the Go heap
	address, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("VirtualAlloc failed: %w", err)
	}

	// Lock the memory to prevent it from being swapped to disk
	if err := windows.VirtualLock(address, uintptr(size)); err != nil {
		windows.VirtualFree(address, 0, windows.MEM_RELEASE)
		return nil, fmt.Errorf("VirtualLock failed: %w", err)
	}

	return &Secret{
		address: address,
		data:    unsafe.Slice((*byte)(unsafe.Pointer(address)), size),
		length:  size,
	}, nil
}

// NewFromBytes copies the source bytes into a locked buffer and then zeroes
// the source in place, so the caller's slice no longer holds the secret.
func NewFromBytes(source []byte) (*Secret, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("cannot create a secret from an empty source")
	}

	secret, err := New(len(source))
	if err != nil {
		return nil, err
	}

	copy(secret.data, source)
	for index := range source {
		source[index] = 0
	}
	return secret, nil
}

// Bytes returns the secret data. The returned slice points directly into the
// locked region, so callers must not hold references to it beyond the
// lifetime of the Secret. Panics if the secret has been closed.
func (s *Secret) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		panic("read from closed secret")
	}
	return s.data[:s.length]
}

// Len returns the size of the secret data
func (s *Secret) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Close zeroes the secret, unlocks and releases the memory. After Close, any
// access to Bytes panics. Close is idempotent.
func (s *Secret) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	// Zero the contents before releasing
	for index := range s.data {
		s.data[index] = 0
	}

	// The memory is released when the process exits regardless, so release
	// failures are reported but nothing further can be done about them
	var firstError error
	if err := windows.VirtualUnlock(s.address, uintptr(s.length)); err != nil && firstError == nil {
		firstError = fmt.Errorf("VirtualUnlock failed: %w", err)
	}
	if err := windows.VirtualFree(s.address, 0, windows.MEM_RELEASE); err != nil && firstError == nil {
		firstError = fmt.Errorf("VirtualFree failed: %w", err)
	}

	s.data = nil
	s.address = 0
	return firstError
}
