package relay

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MaxReplyBytes caps how much of a status reply is read.
const MaxReplyBytes = 100

// relayLine matches the per-channel lines the board prints, e.g. "CH1: ON".
var relayLine = regexp.MustCompile(`(?i)CH\s*([1-4])\s*[:=]\s*(ON|OFF)`)

// RelayState is one channel as reported by the board.
type RelayState struct {
	Channel Channel
	On      bool
}

// Report is the board's reply to a status request.
type Report struct {
	Raw    []byte
	Relays []RelayState // parsed channel states, in channel order; empty if unrecognized
}

// ParseReport keeps raw and extracts any channel states it can recognize.
func ParseReport(raw []byte) *Report {
	r := &Report{Raw: raw}

	seen := make(map[Channel]bool)
	for _, m := range relayLine.FindAllStringSubmatch(string(raw), -1) {
		n, _ := strconv.Atoi(m[1])
		ch := Channel(n)
		if seen[ch] {
			continue
		}
		seen[ch] = true
		r.Relays = append(r.Relays, RelayState{Channel: ch, On: strings.EqualFold(m[2], "on")})
	}
	sort.Slice(r.Relays, func(i, j int) bool { return r.Relays[i].Channel < r.Relays[j].Channel })

	return r
}

// Relay returns the reported state of ch and whether the board mentioned it.
func (r *Report) Relay(ch Channel) (on bool, ok bool) {
	for _, s := range r.Relays {
		if s.Channel == ch {
			return s.On, true
		}
	}
	return false, false
}

// Text renders the reply as printable text: CR/LF become newlines and other
// control bytes become dots.
func (r *Report) Text() string {
	normalized := strings.ReplaceAll(string(r.Raw), "\r\n", "\n")
	var b strings.Builder
	for _, c := range []byte(normalized) {
		switch {
		case c == '\n', c == '\r':
			b.WriteByte('\n')
		case c >= 32 && c <= 126:
			b.WriteByte(c)
		default:
			b.WriteByte('.')
		}
	}
	return strings.TrimRight(b.String(), "\n ")
}

func (r *Report) String() string {
	return r.Text()
}

// Short renders the compact one-line form "[1000]": one digit per channel in
// board order, '?' for channels the board did not mention. Unrecognised
// replies fall back to Text.
func (r *Report) Short() string {
	if len(r.Relays) == 0 {
		return r.Text()
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, ch := range Channels() {
		on, ok := r.Relay(ch)
		switch {
		case !ok:
			b.WriteByte('?')
		case on:
			b.WriteByte('1')
		default:
			b.WriteByte('0')
		}
	}
	b.WriteByte(']')
	return b.String()
}
