package cli

import (
	"os"
	"strings"

	"geomag-cli/internal/model"

	"github.com/pkg/errors"
)

// loadObservation reads an observation file, or creates the standard reading
// sequence starting at begin when no file is given.
func loadObservation(app *App, file, begin string) (*model.Observation, error) {
	if file = strings.TrimSpace(file); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrap(err, "open observation")
		}
		defer f.Close()
		obs, err := model.DecodeObservation(f)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", file)
		}
		return obs, nil
	}

	b, err := parseInstant(begin, app.Clock.Now())
	if err != nil {
		return nil, errors.Wrap(err, "--begin")
	}
	return model.StandardObservation(b), nil
}

// findMeasurement returns the first measurement of type t.
func findMeasurement(obs *model.Observation, t model.ReadingType) (*model.Measurement, error) {
	for _, m := range obs.Measurements {
		if m.Type() == t {
			return m, nil
		}
	}
	return nil, errNotFound("measurement", t.String())
}
