// Package session owns the lifecycle of one active meeting: an explicit
// state machine from Starting to Closed, the one-shot close sequence that
// records history and returns the user home, and the conditional host
// password application against the conferencing component.
package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"tianya/internal/history"
	"tianya/internal/logger"
	"tianya/internal/testutils"
	"tianya/pkg/meettypes"
)

// Phase is the lifecycle state of a meeting session.
type Phase int

// Lifecycle phases in transition order. Closed is terminal.
const (
	PhaseStarting Phase = iota
	PhaseActive
	PhaseClosing
	PhaseClosed
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseActive:
		return "active"
	case PhaseClosing:
		return "closing"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// dateFormat matches the human-readable completion timestamps shown in the
// history list.
const dateFormat = "2006-01-02 15:04:05"

// Controller drives one meeting session. It is created with validated start
// parameters and reacts to the conferencing component's asynchronous signals.
// The close sequence is latched: however many times the component signals
// "ready to close", history is written and navigation reset exactly once.
type Controller struct {
	mu         sync.Mutex
	params     meettypes.SessionParams
	phase      Phase
	conference Conference
	history    *history.Service
	nav        Navigator
	testMode   bool
	log        *log.Logger
}

// NewController creates a controller in the Starting phase.
func NewController(params meettypes.SessionParams, hist *history.Service, nav Navigator, testMode bool) *Controller {
	return &Controller{
		params:   params,
		phase:    PhaseStarting,
		history:  hist,
		nav:      nav,
		testMode: testMode,
		log:      logger.NewStyledLogger("Session"),
	}
}

// AttachConference hands the controller its view of the conferencing
// component once the component has been constructed.
func (c *Controller) AttachConference(conf Conference) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conference = conf
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// HandleConferenceJoined reacts to the component's "conference joined"
// signal. The session becomes Active, and when the caller is the host, a
// password was supplied, and the component currently exposes the password
// capability, the password is applied. Any missing condition is a silent
// no-op: the capability may simply not be ready yet when the signal fires.
func (c *Controller) HandleConferenceJoined() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseStarting {
		c.phase = PhaseActive
		c.log.Debug("Conference joined", "room", c.params.Room, "phase", c.phase)
	}

	if !c.params.IsHost || c.params.Password == "" {
		return
	}
	if c.conference == nil {
		c.log.Debug("No conference attached, skipping password", "room", c.params.Room)
		return
	}
	setter, ok := c.conference.PasswordCapability()
	if !ok {
		c.log.Debug("Password capability not available, skipping", "room", c.params.Room)
		return
	}

	if err := setter.SetPassword(c.params.Password); err != nil {
		// Securing the room failed; the meeting itself goes on.
		c.log.Error("Failed to set room password", "room", c.params.Room, "error", err)
		return
	}
	c.log.Debug("Room password applied", "room", c.params.Room)
}

// HandleReadyToClose reacts to the component's "ready to close" signal.
// The component may emit it several times; the first call runs the full close
// sequence and every later call is ignored. A failed history write is logged
// and dropped: losing one record is acceptable, blocking the user's return to
// the home surface is not.
func (c *Controller) HandleReadyToClose(ctx context.Context) {
	c.mu.Lock()
	if c.phase == PhaseClosing || c.phase == PhaseClosed {
		c.mu.Unlock()
		c.log.Debug("Duplicate close signal ignored", "room", c.params.Room, "phase", c.phase)
		return
	}
	c.phase = PhaseClosing
	c.mu.Unlock()

	record := meettypes.MeetingRecord{
		ID:   testutils.GenerateUUID(c.testMode),
		Room: c.params.Room,
		Date: testutils.GetCurrentTime(c.testMode).Format(dateFormat),
	}
	if err := c.history.Append(ctx, record); err != nil {
		c.log.Error("Failed to save meeting record", "room", c.params.Room, "error", err)
	}

	c.nav.ResetToHome()

	c.mu.Lock()
	c.phase = PhaseClosed
	c.mu.Unlock()
	c.log.Debug("Session closed", "room", c.params.Room, "phase", PhaseClosed)
}
