// Package process executes external commands. All tool invocations in the
// codebase go through the Runner interface so that tests can substitute a
// fake without spawning real processes.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Output holds the captured streams of one completed external command
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes a single external command and blocks until it exits.
// A hung external tool blocks the calling operation indefinitely; callers
// needing responsiveness impose a deadline through the supplied context.
type Runner interface {

	// Run executes argv, optionally feeding stdin, and returns the captured
	// standard streams. The returned error is the raw execution error: an
	// *exec.ExitError for a non-zero exit, or another error when the command
	// could not be spawned at all.
	Run(ctx context.Context, argv []string, stdin io.Reader) (Output, error)
}

// Exec is the Runner backed by real processes
type Exec struct{}

func (Exec) Run(ctx context.Context, argv []string, stdin io.Reader) (Output, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin

	// Capture stdout and stderr separately: stdout is parsed by the caller,
	// while stderr is the failure detail surfaced on non-zero exits
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// Executes the specified command without elevation and returns its standard
// output, providing pretty error messages for non-zero exit codes
func CaptureOutput(ctx context.Context, runner Runner, argv []string) (string, error) {
	output, err := runner.Run(ctx, argv, nil)

	// If an error occurred, determine whether it was a non-zero exit code or a failure to run the command
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return "", fmt.Errorf(
				"command %v failed with exit code %v and output:\n%s",
				argv,
				exitError.ProcessState.ExitCode(),
				output.Stderr,
			)
		}
		return "", fmt.Errorf("failed to run command %v: %v", argv, err)
	}

	return output.Stdout, nil
}

// Executes the specified command, ensuring it inherits the standard streams from the current process
func RunWithInheritedHandles(command []string) (int, error) {

	// Retrieve the path to the executable
	executable, err := exec.LookPath(command[0])
	if err != nil {
		return -1, err
	}

	// Attempt to run the executable, ensuring it inherits the standard streams from the current process
	process, err := os.StartProcess(executable, command, &os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})

	// Verify that the child process started successfully
	if err != nil {
		return -1, err
	}

	// Wait for the child process to complete
	status, err := process.Wait()
	if err != nil {
		return -1, err
	}

	// Return the exit code from the child process
	return status.ExitCode(), nil
}

// Exit the current process with the specified exit code, optionally pausing beforehand
func ExitWithPause(exitCode int, pause bool) {

	// Pause if requested
	if pause {
		PauseForInput()
	}

	// Exit with the specified exit code
	os.Exit(exitCode)
}
