// internal/telephony/session.go
//
// Call-session collaborator surface. The workspace core never drives real
// telephony: it consumes this interface for call identifiers and readiness
// and leaves signaling to whatever implements it.

package telephony

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrReadyTimeout reports that the device never signaled readiness within
// the caller's deadline.
var ErrReadyTimeout = errors.New("telephony: device ready signal timed out")

// ErrNotReady reports a connect attempt before the device registered.
var ErrNotReady = errors.New("telephony: device is not ready")

// SessionManager is the query surface the workspace consumes.
type SessionManager interface {
	// CurrentCallSid returns the identifier of the current or last call.
	CurrentCallSid() (string, bool)
	// SetCurrentCallSid records the identifier reported by the provider.
	SetCurrentCallSid(sid string)
	// IsReady reports whether the device finished registration.
	IsReady() bool
	// HasActiveCall reports whether a call is in progress.
	HasActiveCall() bool
	// Disconnect terminates the active call; false when none was active.
	Disconnect() bool
}

// ReadySignal is a one-shot readiness future. The provider resolves it once
// after registration; waiters either observe it or hit their deadline as a
// typed failure.
type ReadySignal struct {
	once sync.Once
	done chan struct{}
}

// NewReadySignal returns an unresolved signal.
func NewReadySignal() *ReadySignal {
	return &ReadySignal{done: make(chan struct{})}
}

// Resolve marks the signal ready. Idempotent.
func (s *ReadySignal) Resolve() {
	s.once.Do(func() { close(s.done) })
}

// Resolved reports whether the signal fired, without blocking.
func (s *ReadySignal) Resolved() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Await blocks until the signal resolves or the context expires.
func (s *ReadySignal) Await(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrReadyTimeout
		}
		return ctx.Err()
	}
}

// SimulatedDevice is an in-process SessionManager used by the workspace and
// tests. It mints provider-shaped call SIDs locally and keeps the same
// lifecycle as a real device: register, connect, disconnect.
type SimulatedDevice struct {
	identity string
	ready    *ReadySignal
	callSid  string
	active   bool
}

// NewSimulatedDevice creates an unregistered device for the given agent
// identity.
func NewSimulatedDevice(identity string) *SimulatedDevice {
	return &SimulatedDevice{
		identity: strings.TrimSpace(identity),
		ready:    NewReadySignal(),
	}
}

// Identity returns the agent identity the device registered with.
func (d *SimulatedDevice) Identity() string {
	return d.identity
}

// Register completes device setup and resolves the ready signal.
func (d *SimulatedDevice) Register() {
	d.ready.Resolve()
}

// Ready exposes the readiness future for bounded waits.
func (d *SimulatedDevice) Ready() *ReadySignal {
	return d.ready
}

// Connect places a call and returns its SID.
func (d *SimulatedDevice) Connect() (string, error) {
	if !d.IsReady() {
		return "", ErrNotReady
	}
	sid := "CA" + strings.ReplaceAll(uuid.NewString(), "-", "")
	d.callSid = sid
	d.active = true
	return sid, nil
}

// CurrentCallSid returns the SID of the current or last call.
func (d *SimulatedDevice) CurrentCallSid() (string, bool) {
	if d.callSid == "" {
		return "", false
	}
	return d.callSid, true
}

// SetCurrentCallSid records an externally reported SID.
func (d *SimulatedDevice) SetCurrentCallSid(sid string) {
	d.callSid = strings.TrimSpace(sid)
}

// IsReady reports whether registration completed.
func (d *SimulatedDevice) IsReady() bool {
	return d.ready.Resolved()
}

// HasActiveCall reports whether a call is in progress.
func (d *SimulatedDevice) HasActiveCall() bool {
	return d.active
}

// Disconnect hangs up the active call. The SID is retained so the
// disposition form can still attach it after the call ends.
func (d *SimulatedDevice) Disconnect() bool {
	if !d.active {
		return false
	}
	d.active = false
	return true
}
