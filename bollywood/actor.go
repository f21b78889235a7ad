package bollywood

// Actor is the interface implemented by anything that processes messages.
// Messages arrive one at a time from the actor's mailbox, so an actor never
// needs to lock its own state.
type Actor interface {
	Receive(ctx Context)
}

// PID is a unique reference to a running actor instance.
type PID struct {
	ID string
}

// String returns the string representation of the PID.
func (pid *PID) String() string {
	return pid.ID
}

// --- System Messages ---

// Started is delivered to an actor right after its goroutine starts.
type Started struct{}

// Stopping signals the actor to finish up. No user messages follow it.
type Stopping struct{}

// Stopped is the final message an actor receives before its goroutine exits.
type Stopped struct{}

// messageEnvelope wraps a user message with sender information.
type messageEnvelope struct {
	Sender  *PID
	Message interface{}
}
