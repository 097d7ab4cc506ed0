// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site mutates the portfolio working tree itself: stamping the
// visible "Last Updated" date into the static pages and publishing the
// tree to its git remote.
package site

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runGit executes one git command in dir and returns its combined output.
type runGit func(ctx context.Context, dir string, args ...string) (string, error)

func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Pusher publishes content changes by committing the whole working tree
// and pushing it to the configured remote.
type Pusher struct {
	dir string
	run runGit
}

// NewPusher creates a Pusher over the content root.
func NewPusher(dir string) *Pusher {
	return &Pusher{dir: dir, run: execGit}
}

// Push stages everything, commits with the given message, and pushes.
// A clean working tree is not an error: the push is skipped and Push
// reports that nothing changed.
func (p *Pusher) Push(ctx context.Context, message string) (bool, error) {
	if out, err := p.run(ctx, p.dir, "add", "-A"); err != nil {
		return false, fmt.Errorf("git add: %w: %s", err, strings.TrimSpace(out))
	}

	out, err := p.run(ctx, p.dir, "commit", "-m", message)
	if err != nil {
		if strings.Contains(out, "nothing to commit") {
			return false, nil
		}
		return false, fmt.Errorf("git commit: %w: %s", err, strings.TrimSpace(out))
	}

	if out, err := p.run(ctx, p.dir, "push"); err != nil {
		return false, fmt.Errorf("git push: %w: %s", err, strings.TrimSpace(out))
	}
	return true, nil
}
