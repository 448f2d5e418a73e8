package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput matches every [InputError].
	ErrInvalidInput = errors.New("invalid input")

	ErrNoUpdates      = errors.New("No updates provided")
	ErrNoStyleUpdates = errors.New("No valid fields to update. Valid fields: voice, detail_level, common_phrases, vocabulary_preferences")
)

// InputError is a caller-fixable validation failure. Its message is safe to
// return to the client.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Is makes every InputError match [ErrInvalidInput].
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field string, err error) error {
	return &InputError{Field: field, Err: err}
}
