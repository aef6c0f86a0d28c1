package vm

import "fmt"

// State is the run state of the machine: either Running or WaitingForKey.
type State interface {
	fmt.Stringer
	isState()
}

type Running struct{}

// WaitingForKey freezes instruction execution and the delay timer until a key
// press arrives. The key code is written into Register.
type WaitingForKey struct {
	Register uint8
}

func (Running) isState()       {}
func (WaitingForKey) isState() {}

func (Running) String() string { return "running" }

func (s WaitingForKey) String() string {
	return fmt.Sprintf("waiting for key into v%x", s.Register)
}
