package handlers

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/provisioning"
)

// PrintError writes err the way the CLI reports failures: validation
// problems under a "Validation Error:" heading, anything else as a single
// "Error: <message>" line. The phase wrapper is left out of the message.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if ve, ok := apperr.AsValidation(err); ok {
		_, _ = fmt.Fprintln(w, "Validation Error:")
		_, _ = fmt.Fprintln(w, ve.Error())
		return
	}

	var phaseErr *provisioning.PhaseError
	if errors.As(err, &phaseErr) {
		err = phaseErr.Err
	}
	_, _ = fmt.Fprintln(w, "Error:", err.Error())
}

// formatAmount renders a dollar amount without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
