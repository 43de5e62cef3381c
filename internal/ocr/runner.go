// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"docverify/internal/observability"
)

// Runner executes external commands. Tests replace it with a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	observer *observability.StandardObserver
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	obs := r.observer.WithRequest(observability.RequestIDFrom(ctx))
	finish := obs.StartTiming("ocr", "exec:"+name, firstArg(args))

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	finish(err == nil, map[string]interface{}{
		"args":         strings.Join(args, " "),
		"stdout_bytes": out.Len(),
		"stderr":       truncate(errb.String(), 8<<10),
	})
	return out.Bytes(), errb.Bytes(), err
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
