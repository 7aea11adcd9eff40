package cfg

import (
	"fmt"
	"log"

	"github.com/kpotier/sterics/pkg/steric"
)

// Calculation is an interface that only contains one method: Start. Every
// calculation must have a Start method that will launch the calculation. It
// must be a thread blocking method.
type Calculation interface {
	Start() error
}

// Launch launchs a specific calculation. It is a thread blocking method. The
// parameters required to launch the calculation must be in a file.
func Launch(name string, path string, l *log.Logger) error {
	var (
		err error
		cal Calculation
	)

	switch name {
	case steric.Type:
		var s *steric.Steric
		s, err = steric.New(path)
		if err == nil && l != nil {
			s.SetLogger(l)
		}
		cal = s
	default:
		return fmt.Errorf("calculation `%s` doesn't exist", name)
	}

	if err != nil {
		return fmt.Errorf("%s: New: %w", name, err)
	}

	err = cal.Start()
	if err != nil {
		return fmt.Errorf("%s: Start: %w", name, err)
	}

	return nil
}
