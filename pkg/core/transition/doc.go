// Package transition animates values between successive chart states.
//
// # Properties
//
// A [Property] is a two-state machine. It rests Idle at its target until
// [Property.SetTarget] receives a different value, then animates from the
// value it shows at that moment toward the new target. Each
// [Property.Tick] advances normalized progress; reaching 1 returns it to
// Idle. Retargeting mid-flight is the only way to cancel: the live sample
// becomes the new start, so the displayed value never jumps.
//
// Properties own no timers. A frame loop (the pipeline's fixed-step
// scheduler or the preview TUI) calls [Engine.Tick] with the elapsed time.
//
// # Drivers
//
// A [Spec] selects a driver:
//
//   - [Timing]: fixed duration along an easing curve ([ParseEasing] accepts
//     linear, ease, ease-in, ease-out, ease-in-out and cubic-bezier(...)).
//   - [Spring]: a damped oscillator solved in closed form; its duration is
//     the [SettleTime] and under-damped springs overshoot.
//
// # Pulse
//
// A [Pulse] oscillates scale and opacity while its property is Idle and is
// held at [Neutral] while it animates, restarting its phase afterwards.
package transition
