package elevate

import (
	"bytes"
	"context"
	"testing"

	"github.com/Willfa-alt/Boot-Controller/internal/credential"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// unelevatedExecutor forces the elevation prefix on regardless of the
// privileges the test process actually runs with
func unelevatedExecutor(runner process.Runner) *Executor {
	executor := NewExecutor(runner, discardLogger())
	executor.elevated = func() bool { return false }
	return executor
}

func TestRunAppliesElevationPrefix(t *testing.T) {
	runner := &fakeRunner{}
	secret, err := credential.NewFromBytes([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	defer secret.Close()

	unelevatedExecutor(runner).Run(context.Background(), []string{"efibootmgr", "-n", "0003"}, secret)

	want := []string{"sudo", "-S", "-p", "", "--", "efibootmgr", "-n", "0003"}
	if len(runner.argv) != len(want) {
		t.Fatalf("argv = %v, want %v", runner.argv, want)
	}
	for i := range want {
		if runner.argv[i] != want[i] {
			t.Fatalf("argv = %v, want %v", runner.argv, want)
		}
	}
}

func TestRunFeedsSecretOnStdin(t *testing.T) {
	runner := &fakeRunner{}
	secret, err := credential.NewFromBytes([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	defer secret.Close()

	unelevatedExecutor(runner).Run(context.Background(), []string{"efibootmgr", "-v"}, secret)

	if !bytes.Equal(runner.stdin, []byte("hunter2\n")) {
		t.Errorf("stdin = %q, want the newline-terminated secret", runner.stdin)
	}
}

func TestRunLeavesSecretUsable(t *testing.T) {
	runner := &fakeRunner{}
	secret, err := credential.NewFromBytes([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	defer secret.Close()

	executor := unelevatedExecutor(runner)
	executor.Run(context.Background(), []string{"echo", "verified"}, secret)
	executor.Run(context.Background(), []string{"echo", "verified"}, secret)

	// The second invocation must see the same secret bytes: the stdin
	// reader must not consume or close the locked buffer
	if !bytes.Equal(runner.stdin, []byte("hunter2\n")) {
		t.Errorf("stdin on reuse = %q, want the cached secret again", runner.stdin)
	}
}

func TestRunWithoutSecretOmitsStdin(t *testing.T) {
	runner := &fakeRunner{}
	unelevatedExecutor(runner).Run(context.Background(), []string{"echo", "verified"}, nil)

	if runner.stdin != nil {
		t.Errorf("stdin = %q, want none when no secret is supplied", runner.stdin)
	}
}
