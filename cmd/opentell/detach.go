package main

import (
	"os"
	"os/exec"
	"syscall"
)

// spawnDetached re-execs the current binary with args and returns
// immediately without waiting — used for the classifier worker (turn-stop)
// and the self-update check (session-start), both of which must outlive
// the hook that starts them. Setsid detaches the child from the parent's
// process group so a hook's short host-imposed budget never waits on it.
func spawnDetached(args ...string) error {
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}
	cmd := exec.Command(self, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd.Start()
}
