package statesync

// Status is the connection state exposed to the rendering layer
type Status int

const (
	Closed Status = iota
	Open
	Receiving
	Error
)

// connecting is a handle's state before its socket is up. It is never
// published: Connect only returns a channel once it is Open.
const connecting Status = -1

func (s Status) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case Receiving:
		return "RECEIVING"
	case Error:
		return "ERROR"
	case connecting:
		return "CONNECTING"
	}
	return "UNKNOWN"
}

// event is a socket lifecycle event fed to the state machine
type event int

const (
	evOpened event = iota
	evMessageOK
	evMessageBad
	evTransportError
	evClosed
)

func (e event) String() string {
	switch e {
	case evOpened:
		return "opened"
	case evMessageOK:
		return "message"
	case evMessageBad:
		return "bad-message"
	case evTransportError:
		return "transport-error"
	case evClosed:
		return "closed"
	}
	return "unknown"
}

// snapshotEffect says what an event does to the current snapshot
type snapshotEffect int

const (
	keepSnapshot snapshotEffect = iota
	replaceSnapshot
	clearSnapshot
)

type transition struct {
	next   Status
	effect snapshotEffect
}

// transitions is the whole state machine. Pairs that are not listed are
// ignored, which makes Closed and Error terminal for a handle.
var transitions = map[Status]map[event]transition{
	connecting: {
		evOpened: {Open, keepSnapshot},
		evClosed: {Closed, clearSnapshot},
	},
	Closed: {
		evClosed: {Closed, clearSnapshot},
	},
	Open: {
		evMessageOK:      {Receiving, replaceSnapshot},
		evMessageBad:     {Error, clearSnapshot},
		evTransportError: {Error, clearSnapshot},
		evClosed:         {Closed, clearSnapshot},
	},
	Receiving: {
		evMessageOK:      {Receiving, replaceSnapshot},
		evMessageBad:     {Error, clearSnapshot},
		evTransportError: {Error, clearSnapshot},
		evClosed:         {Closed, clearSnapshot},
	},
	Error: {
		evClosed: {Closed, clearSnapshot},
	},
}

// next looks up the transition for (s, ev)
func next(s Status, ev event) (transition, bool) {
	t, ok := transitions[s][ev]
	return t, ok
}
