package relay

import (
	"fmt"
	"strings"
)

// Command is the logical operation requested of the board.
type Command int

const (
	CommandPower Command = iota + 1
	CommandVolume
	CommandReset
	CommandStatus
)

func (c Command) String() string {
	switch c {
	case CommandPower:
		return "power"
	case CommandVolume:
		return "volume"
	case CommandReset:
		return "reset"
	case CommandStatus:
		return "status"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// ParseCommand maps a command name onto a Command.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(s) {
	case "power":
		return CommandPower, nil
	case "volume":
		return CommandVolume, nil
	case "reset":
		return CommandReset, nil
	case "status":
		return CommandStatus, nil
	default:
		return 0, fmt.Errorf("%w: unknown command %q", ErrInvalidArgument, s)
	}
}

// State qualifies a Command. Which states are valid depends on the command.
type State int

const (
	StateUnset State = iota
	StateOn
	StateOff
	StateUp
	StateDown
	StateAll
	StateShort // status: print only the raw reply
)

var stateNames = map[State]string{
	StateUnset: "",
	StateOn:    "on",
	StateOff:   "off",
	StateUp:    "up",
	StateDown:  "down",
	StateAll:   "all",
	StateShort: "short",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState maps a state name onto a State. The empty string is StateUnset.
func ParseState(s string) (State, error) {
	s = strings.ToLower(s)
	for state, name := range stateNames {
		if name == s {
			return state, nil
		}
	}
	return StateUnset, fmt.Errorf("%w: unknown state %q", ErrInvalidArgument, s)
}

// Volume amounts accepted from callers. Longer pulses are reserved for reset.
const (
	MinVolumeAmount = 1
	MaxVolumeAmount = 3
)

// Operation is one validated Command with its State and, for volume, Amount.
type Operation struct {
	Command Command
	State   State
	Amount  int
}

// NewOperation parses and validates a command line style request. Amount is
// only consulted for volume; pass 0 to get the default of 1.
func NewOperation(command, state string, amount int) (Operation, error) {
	cmd, err := ParseCommand(command)
	if err != nil {
		return Operation{}, err
	}
	st, err := ParseState(state)
	if err != nil {
		return Operation{}, err
	}

	op := Operation{Command: cmd, State: st}
	switch cmd {
	case CommandPower:
		// An omitted power state switches the amplifier off
		if op.State == StateUnset {
			op.State = StateOff
		}
	case CommandVolume:
		op.Amount = amount
		if op.Amount == 0 {
			op.Amount = MinVolumeAmount
		}
	}

	if err := op.Validate(); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// Validate checks that State and Amount make sense for Command.
func (o Operation) Validate() error {
	switch o.Command {
	case CommandPower:
		if o.State != StateOn && o.State != StateOff {
			return fmt.Errorf("%w: power state must be on or off, got %q", ErrInvalidArgument, o.State)
		}
	case CommandVolume:
		if o.State != StateUp && o.State != StateDown {
			return fmt.Errorf("%w: volume direction must be up or down, got %q", ErrInvalidArgument, o.State)
		}
		if o.Amount < MinVolumeAmount || o.Amount > MaxVolumeAmount {
			return fmt.Errorf("%w: volume amount must be %d-%d, got %d",
				ErrInvalidArgument, MinVolumeAmount, MaxVolumeAmount, o.Amount)
		}
	case CommandReset:
		if o.State != StateUnset && o.State != StateAll {
			return fmt.Errorf("%w: reset state must be all or omitted, got %q", ErrInvalidArgument, o.State)
		}
	case CommandStatus:
		if o.State != StateUnset && o.State != StateShort {
			return fmt.Errorf("%w: status takes no state, got %q", ErrInvalidArgument, o.State)
		}
	default:
		return fmt.Errorf("%w: unknown command %d", ErrInvalidArgument, int(o.Command))
	}
	return nil
}

func (o Operation) String() string {
	parts := []string{o.Command.String()}
	if o.State != StateUnset {
		parts = append(parts, o.State.String())
	}
	if o.Command == CommandVolume {
		parts = append(parts, fmt.Sprint(o.Amount))
	}
	return strings.Join(parts, " ")
}
