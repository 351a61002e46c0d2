// Package command turns OS commands into job execution callbacks.
package command

import (
	"bytes"
	"fmt"
	"github.com/osmike/orbitcron/internal/domain"
	errs "github.com/osmike/orbitcron/internal/error"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"
)

const (
	// ENV_JOB_NAME carries the job name into the child process.
	ENV_JOB_NAME = "ORBITCRON_JOB"
	// ENV_ATTRIBUTES carries the comma-joined execution attributes into the child process.
	ENV_ATTRIBUTES = "ORBITCRON_ATTRIBUTES"

	// MAX_OUTPUT bounds the combined output saved into the job data.
	MAX_OUTPUT = 4096
)

// Exec is an execution callback that runs the command given by its bound arguments.
//
// The first argument is the program, the rest are passed to it verbatim; every
// argument is formatted with fmt.Sprint. The process is killed when the run
// context is cancelled. A non-zero exit status fails the job.
//
// The trimmed combined output is saved under the "output" key and the exit code
// under "exit_code". Output longer than MAX_OUTPUT keeps its tail, cut on a rune boundary.
func Exec(ctrl domain.FnControl, args ...any) error {
	if len(args) == 0 {
		return errs.ErrEmptyCommand
	}
	argv := make([]string, len(args))
	for i, a := range args {
		argv[i] = fmt.Sprint(a)
	}
	if strings.TrimSpace(argv[0]) == "" {
		return errs.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctrl.Context(), argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(),
		ENV_JOB_NAME+"="+ctrl.JobName(),
		ENV_ATTRIBUTES+"="+strings.Join(ctrl.Attributes(), ","),
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()

	output := out.String()
	if len(output) > MAX_OUTPUT {
		output = output[len(output)-MAX_OUTPUT:]
		for len(output) > 0 && !utf8.RuneStart(output[0]) {
			output = output[1:]
		}
	}
	ctrl.SaveData(map[string]interface{}{
		"output":    strings.TrimSpace(output),
		"exit_code": cmd.ProcessState.ExitCode(),
	})

	if err != nil {
		return errs.New(errs.ErrJobFailed, fmt.Sprintf("command %q: %v", argv[0], err))
	}
	return nil
}

// Args converts a command line into bound arguments for Exec.
func Args(argv []string) []any {
	out := make([]any, len(argv))
	for i, a := range argv {
		out[i] = a
	}
	return out
}
