package authview

import "fmt"

// Mode selects which form the view shows.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
	ModeRecover  Mode = "recover"
)

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(name); m {
	case ModeLogin, ModeRegister, ModeRecover:
		return m, nil
	default:
		return "", fmt.Errorf("unknown auth mode %q", name)
	}
}

// Copy is the per-mode heading and button text.
type Copy struct {
	Title    string
	Subtitle string
	Button   string
}

var copies = map[Mode]Copy{
	ModeLogin:    {Title: "Welcome Back", Subtitle: "Your collection awaits.", Button: "Sign In"},
	ModeRegister: {Title: "Create Account", Subtitle: "Join the creative community.", Button: "Sign Up"},
	ModeRecover:  {Title: "Recover Access", Subtitle: "We'll send you a new key.", Button: "Send Instructions"},
}

// Copy returns the text shown for m.
func (m Mode) Copy() Copy {
	return copies[m]
}

// Field names a form input.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// FieldSpec describes how a field is presented.
type FieldSpec struct {
	Name        Field
	Label       string
	Placeholder string
	Secret      bool
}

var (
	usernameSpec = FieldSpec{Name: FieldUsername, Label: "Artist Name", Placeholder: "Phidias"}
	emailSpec    = FieldSpec{Name: FieldEmail, Label: "Email Address", Placeholder: "artist@museo.ai"}
	passwordSpec = FieldSpec{Name: FieldPassword, Label: "Password", Secret: true}
)

// Fields lists the inputs shown for m, in display order.
func (m Mode) Fields() []FieldSpec {
	switch m {
	case ModeRegister:
		return []FieldSpec{usernameSpec, emailSpec, passwordSpec}
	case ModeRecover:
		return []FieldSpec{emailSpec}
	default:
		return []FieldSpec{emailSpec, passwordSpec}
	}
}

// Link is a mode switch offered below the form.
type Link struct {
	Label  string
	Target Mode
}

// Links lists the mode switches available from m.
func (m Mode) Links() []Link {
	if m != ModeLogin {
		return []Link{{Label: "Back to Sign In", Target: ModeLogin}}
	}
	return []Link{
		{Label: "Sign Up", Target: ModeRegister},
		{Label: "Recover", Target: ModeRecover},
	}
}
