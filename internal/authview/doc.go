// Package authview implements the sign-in screen as a UI-independent state
// machine.
//
// A View holds the active mode (login, register or recover) and the form
// values set through SetField. Submit validates the form for the active
// mode, calls the auth endpoint, and moves to the next mode. Failures of any
// kind surface as a single generic Alert while the cause is logged. The CLI
// drives a View interactively; other front ends can render Copy, Fields and
// Links themselves.
package authview
