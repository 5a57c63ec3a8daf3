package formflow

import "errors"

// ErrNotAtFinalStep is returned when Submit is called before the wizard
// reaches its last step.
var ErrNotAtFinalStep = errors.New("submit is only available on the final step")

// ErrStepInvalid is returned when the final step's validation fails on
// submit; field errors are available via Errors().
var ErrStepInvalid = errors.New("current step has invalid fields")
