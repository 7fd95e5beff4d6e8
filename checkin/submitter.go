package checkin

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// Conn is the part of a connection the submitter needs
type Conn interface {
	IsOpen() bool
	Send(payload string) error
}

// Outcome describes what Submit did with a candidate
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeInvalid
	OutcomeNotOpen
	OutcomeSendFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNotOpen:
		return "not_open"
	case OutcomeSendFailed:
		return "send_failed"
	default:
		return "unknown"
	}
}

// Submitter checks candidates and hands valid ones to a connection
type Submitter struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSubmitter creates a submitter; a nil logger means slog.Default()
func NewSubmitter(logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	mustRegister(v, "leadingfloat", func(fl validator.FieldLevel) bool {
		_, ok := asset.LeadingFloat(fl.Field().String())
		return ok
	})
	return &Submitter{validate: v, logger: logger.With("component", "checkin")}
}

// mustRegister adds a custom validation tag and panics if the validator refuses it
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// Validate reports whether c may be sent
func (s *Submitter) Validate(c asset.Candidate) bool {
	return s.validate.Struct(c) == nil
}

// Submit sends c over conn when c is valid and conn is open.
// Invalid candidates are dropped without an error.
func (s *Submitter) Submit(c asset.Candidate, conn Conn) Outcome {
	if err := s.validate.Struct(c); err != nil {
		s.logger.Debug("candidate rejected", "id", c.ID, "error", err)
		return OutcomeInvalid
	}
	if conn == nil || !conn.IsOpen() {
		s.logger.Debug("connection not open, candidate not sent", "id", c.ID)
		return OutcomeNotOpen
	}
	payload, err := asset.EncodeCandidate(c)
	if err != nil {
		s.logger.Warn("encode candidate", "id", c.ID, "error", err)
		return OutcomeSendFailed
	}
	if err := conn.Send(payload); err != nil {
		s.logger.Warn("send candidate", "id", c.ID, "error", err)
		return OutcomeSendFailed
	}
	s.logger.Info("sending asset to server", "id", c.ID)
	return OutcomeSent
}
