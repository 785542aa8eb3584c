package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"untisd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct-tag rules plus the checks tags cannot
// express (timezone resolution).
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}

	if _, err := cv.conf.Location(); err != nil {
		return fmt.Errorf("invalid poll.timezone %q: %w", cv.conf.Poll.Timezone, err)
	}

	return nil
}
