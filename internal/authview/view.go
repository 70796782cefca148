package authview

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"museo/internal/logging"
	"museo/internal/services"
	"museo/internal/services/auth"
)

const (
	component = "authview"

	// AlertMessage is the only text shown for any failed submit.
	AlertMessage = "Authentication error"
)

// Authenticator is the subset of the auth client the view calls.
type Authenticator interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
	Register(ctx context.Context, req auth.RegisterRequest) error
	Recover(ctx context.Context, req auth.RecoverRequest) error
}

// TokenSaver persists a token returned by login.
type TokenSaver interface {
	Save(ctx context.Context, token string) error
}

// Alert is the error returned by Submit. Its text is always AlertMessage;
// the cause is available through errors.Is/As.
type Alert struct {
	Mode  Mode
	Cause error
}

func (a *Alert) Error() string { return AlertMessage }

func (a *Alert) Unwrap() error { return a.Cause }

// Outcome describes a successful submit.
type Outcome struct {
	// Mode is the active mode after the submit.
	Mode          Mode
	Authenticated bool
	TokenStored   bool
}

// Option customises a View.
type Option func(*View)

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		v.logger = logging.NewComponentLogger(logger, component)
	}
}

// WithOnLogin registers a callback run after a successful login.
func WithOnLogin(fn func()) Option {
	return func(v *View) {
		v.onLogin = fn
	}
}

// View is the login/register/recover form state machine. Exactly one mode is
// active; it starts in ModeLogin.
type View struct {
	client   Authenticator
	tokens   TokenSaver
	validate *validator.Validate
	logger   *slog.Logger
	onLogin  func()

	mu      sync.Mutex
	mode    Mode
	loading bool
	values  map[Field]string
}

// New builds a view in login mode.
func New(client Authenticator, tokens TokenSaver, opts ...Option) *View {
	v := &View{
		client:   client,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logging.NewNop(),
		mode:     ModeLogin,
		values:   map[Field]string{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mode returns the active mode.
func (v *View) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Copy returns the heading and button text for the active mode.
func (v *View) Copy() Copy {
	return v.Mode().Copy()
}

// Fields returns the inputs for the active mode.
func (v *View) Fields() []FieldSpec {
	return v.Mode().Fields()
}

// SwitchMode activates m. Field values are kept.
func (v *View) SwitchMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return services.Wrap(services.ErrValidation, component, "switch_mode", err.Error(), nil)
	}
	v.mu.Lock()
	v.mode = m
	v.mu.Unlock()
	return nil
}

// SetField records a form value.
func (v *View) SetField(name Field, value string) error {
	switch name {
	case FieldUsername, FieldEmail, FieldPassword:
	default:
		return services.Wrap(services.ErrValidation, component, "set_field", "unknown field "+string(name), nil)
	}
	v.mu.Lock()
	v.values[name] = value
	v.mu.Unlock()
	return nil
}

// Value returns the current value of a field.
func (v *View) Value(name Field) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[name]
}

// Loading reports whether a submit is in flight. It does not block
// concurrent submits.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Submit runs the active mode's action. Any failure, from validation to a
// non-2xx response, is logged and returned as an *Alert.
func (v *View) Submit(ctx context.Context) (Outcome, error) {
	v.mu.Lock()
	v.loading = true
	mode := v.mode
	username := strings.TrimSpace(v.values[FieldUsername])
	email := strings.TrimSpace(v.values[FieldEmail])
	password := v.values[FieldPassword]
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.loading = false
		v.mu.Unlock()
	}()

	var (
		outcome Outcome
		err     error
	)
	switch mode {
	case ModeRegister:
		outcome, err = v.register(ctx, username, email, password)
	case ModeRecover:
		outcome, err = v.requestRecovery(ctx, email)
	default:
		outcome, err = v.login(ctx, email, password)
	}
	if err != nil {
		return v.fail(ctx, mode, err)
	}
	return outcome, nil
}

func (v *View) login(ctx context.Context, email, password string) (Outcome, error) {
	if err := validateForm(v.validate, ModeLogin, loginForm{Email: email, Password: password}); err != nil {
		return Outcome{}, err
	}
	resp, err := v.client.Login(ctx, auth.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{Mode: ModeLogin, Authenticated: true}
	if resp.AccessToken != "" {
		if err := v.tokens.Save(ctx, resp.AccessToken); err != nil {
			return Outcome{}, err
		}
		outcome.TokenStored = true
	}
	v.logger.Info("signed in", slog.String("email", email), slog.Bool("token_stored", outcome.TokenStored))
	if v.onLogin != nil {
		v.onLogin()
	}
	return outcome, nil
}

func (v *View) register(ctx context.Context, username, email, password string) (Outcome, error) {
	form := registerForm{Username: username, Email: email, Password: password}
	if err := validateForm(v.validate, ModeRegister, form); err != nil {
		return Outcome{}, err
	}
	if err := v.client.Register(ctx, auth.RegisterRequest{Username: username, Email: email, Password: password}); err != nil {
		return Outcome{}, err
	}
	v.setMode(ModeLogin)
	v.logger.Info("account registered", slog.String("email", email))
	return Outcome{Mode: ModeLogin}, nil
}

func (v *View) requestRecovery(ctx context.Context, email string) (Outcome, error) {
	if err := validateForm(v.validate, ModeRecover, recoverForm{Email: email}); err != nil {
		return Outcome{}, err
	}
	if err := v.client.Recover(ctx, auth.RecoverRequest{Email: email}); err != nil {
		return Outcome{}, err
	}
	v.setMode(ModeLogin)
	v.logger.Info("recovery requested", slog.String("email", email))
	return Outcome{Mode: ModeLogin}, nil
}

func (v *View) fail(ctx context.Context, mode Mode, err error) (Outcome, error) {
	logging.WithContext(ctx, v.logger).Error("authentication failed",
		slog.String("mode", string(mode)),
		logging.Error(err),
		logging.ErrorKind(err),
	)
	return Outcome{Mode: v.Mode()}, &Alert{Mode: mode, Cause: err}
}

func (v *View) setMode(m Mode) {
	v.mu.Lock()
	v.mode = m
	v.mu.Unlock()
}
