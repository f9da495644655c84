package level

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotFound is returned when a level id is not known.
var ErrNotFound = errors.New("level not found")

// ValidationError contains details about a data-integrity failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate performs the load-time integrity checks:
//   - gravity is finite and start and flag are present
//   - every action type is known and motion steps have a positive period
//   - every portal id is unique and every link resolves to another portal
//   - laser durations are non-negative
//   - hazard masks match their size and have at least one hazard pixel
func (l *Level) Validate() error {
	if math.IsNaN(l.Gravity) || math.IsInf(l.Gravity, 0) {
		return ValidationError{Code: "BAD_GRAVITY", Message: fmt.Sprintf("gravity %v is not finite", l.Gravity)}
	}
	if !l.HasStart {
		return ValidationError{Code: "MISSING_START", Message: "level has no start position"}
	}
	if !l.HasFlag {
		return ValidationError{Code: "MISSING_FLAG", Message: "level has no flag position"}
	}

	for i := range l.Bodies {
		if err := validateActions(&l.Bodies[i]); err != nil {
			return err
		}
	}
	if err := l.validatePortals(); err != nil {
		return err
	}
	if err := l.validateLasers(); err != nil {
		return err
	}
	return l.validateMasks()
}

func validateActions(b *Body) error {
	check := func(actions []Action, delay, move string) error {
		for _, a := range actions {
			switch a.Type {
			case delay:
			case move:
				if a.Period <= 0 {
					return ValidationError{
						Code:    "BAD_PERIOD",
						Message: fmt.Sprintf("body %s: %s step needs a positive period, got %v", b.ID, a.Type, a.Period),
					}
				}
			default:
				return ValidationError{
					Code:    "UNKNOWN_ACTION",
					Message: fmt.Sprintf("body %s: unknown action %q", b.ID, a.Type),
				}
			}
			if a.Period < 0 {
				return ValidationError{
					Code:    "BAD_PERIOD",
					Message: fmt.Sprintf("body %s: negative period %v", b.ID, a.Period),
				}
			}
		}
		return nil
	}
	if err := check(b.Rotation, ActionDelayRotation, ActionRotate); err != nil {
		return err
	}
	return check(b.Translation, ActionDelayPosition, ActionPosition)
}

func (l *Level) validatePortals() error {
	seen := make(map[string]string)
	for _, b := range l.Bodies {
		for _, p := range b.Portals {
			if owner, dup := seen[p.ID]; dup {
				return ValidationError{
					Code:    "PORTAL_LINK",
					Message: fmt.Sprintf("portal %s defined on both %s and %s", p.ID, owner, b.ID),
				}
			}
			seen[p.ID] = b.ID
		}
	}
	for _, b := range l.Bodies {
		for _, p := range b.Portals {
			if p.Link == p.ID {
				return ValidationError{Code: "PORTAL_LINK", Message: fmt.Sprintf("portal %s links to itself", p.ID)}
			}
			if _, ok := seen[p.Link]; !ok {
				return ValidationError{
					Code:    "PORTAL_LINK",
					Message: fmt.Sprintf("portal %s links to unknown portal %q", p.ID, p.Link),
				}
			}
		}
	}
	return nil
}

func (l *Level) validateLasers() error {
	for _, b := range l.Bodies {
		for i, lz := range b.Lasers {
			if lz.On < 0 || lz.Off < 0 || math.IsNaN(lz.On) || math.IsNaN(lz.Off) {
				return ValidationError{
					Code:    "LASER_DURATION",
					Message: fmt.Sprintf("body %s laser %d: durations on=%v off=%v must be >= 0", b.ID, i, lz.On, lz.Off),
				}
			}
		}
	}
	return nil
}

func (l *Level) validateMasks() error {
	for _, b := range l.Bodies {
		for name, m := range map[string]*Mask{"acid": b.Acid, "sticky": b.Sticky} {
			if m == nil {
				continue
			}
			if m.W <= 0 || m.H <= 0 || len(m.hits) != m.W*m.H {
				return ValidationError{
					Code:    "BAD_MASK",
					Message: fmt.Sprintf("body %s %s mask: %d cells for %dx%d", b.ID, name, len(m.hits), m.W, m.H),
				}
			}
			if m.Count() == 0 {
				return ValidationError{
					Code:    "BAD_MASK",
					Message: fmt.Sprintf("body %s %s mask has no hazard pixels", b.ID, name),
				}
			}
		}
	}
	return nil
}
