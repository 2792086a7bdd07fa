package credential

import (
	"bytes"
	"testing"
)

func TestSessionStartsEmpty(t *testing.T) {
	session := NewSession()
	if _, ok := session.Cached(); ok {
		t.Error("new session reported a cached secret")
	}
}

func TestSessionStoreAndReuse(t *testing.T) {
	session := NewSession()
	secret, err := NewFromBytes([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	session.Store(secret)
	defer session.Clear()

	cached, ok := session.Cached()
	if !ok {
		t.Fatal("stored secret not cached")
	}
	if !bytes.Equal(cached.Bytes(), []byte("hunter2")) {
		t.Errorf("cached secret holds %q", cached.Bytes())
	}

	// A second read returns the same secret without any re-acquisition
	again, ok := session.Cached()
	if !ok || again != cached {
		t.Error("repeated reads must yield the same secret")
	}
}

func TestSessionStoreReplacesAndClosesPrevious(t *testing.T) {
	session := NewSession()
	first, err := NewFromBytes([]byte("first"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewFromBytes([]byte("second"))
	if err != nil {
		t.Fatal(err)
	}

	session.Store(first)
	session.Store(second)
	defer session.Clear()

	defer func() {
		if recover() == nil {
			t.Error("replaced secret should have been closed")
		}
	}()
	first.Bytes()
}

func TestSessionClear(t *testing.T) {
	session := NewSession()
	secret, err := NewFromBytes([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	session.Store(secret)

	if err := session.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := session.Cached(); ok {
		t.Error("cleared session reported a cached secret")
	}
	if err := session.Clear(); err != nil {
		t.Errorf("clearing an empty session returned %v", err)
	}
}
