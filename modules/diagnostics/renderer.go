package diagnostics

import (
	"errors"
	"net/http"

	"github.com/specialistvlad/bootkernel/internal/kernel"
)

// GenericMessage is the body shown when details are hidden.
const GenericMessage = "Oh no!"

// Renderer turns an error into a status code and body.
type Renderer struct {
	verbose bool
}

// NewRenderer returns a Renderer. A verbose renderer appends the error text.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// Render returns 503 for boot failures and 500 for anything else.
func (r *Renderer) Render(err error) (int, string) {
	status := http.StatusInternalServerError
	if errors.Is(err, kernel.ErrConfigurationLoad) ||
		errors.Is(err, kernel.ErrContainerInit) ||
		errors.Is(err, kernel.ErrModuleBuild) {
		status = http.StatusServiceUnavailable
	}

	if !r.verbose || err == nil {
		return status, GenericMessage
	}
	return status, GenericMessage + "\n\n" + err.Error()
}
