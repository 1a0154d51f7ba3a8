// Package relay speaks the four channel relay board protocol: four byte
// switch frames, the one byte status request, and the timed motor pulses
// that turn the amplifier's volume knob.
package relay
