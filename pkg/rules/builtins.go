package rules

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms rule script source before passing it to
// zygomys:
//
//  1. Kebab-case to underscore: set-tolerance -> set_tolerance.
//     zygomys does not allow hyphens in identifiers (it reads them as
//     subtraction), so the script grammar uses kebab-case and this pass
//     rewrites it outside of strings and comments. String literals are
//     left untouched, so family names like "ADR-10D SLEEVE CUTOUT-"
//     keep their hyphens.
//
//  2. ; line comments become // comments, which is what zygomys parses.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters, so a
		// minus operator stays a minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the rule DSL into a zygomys environment.
// Context accessors read from ctx; decision builtins write into d.
//
// Source code must be preprocessed with preprocessSource() so kebab-case
// names reach zygomys in their registered underscore form.
func registerBuiltins(env *zygo.Zlisp, ctx Context, d *Decision) {

	// -----------------------------------------------------------------------
	// (equipment-name) -> "AHU-12"
	// -----------------------------------------------------------------------
	env.AddFunction("equipment_name", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpStr{S: ctx.EquipmentName}, nil
	})

	// -----------------------------------------------------------------------
	// (sleeve-diameter) -> 100.0   ; millimeters
	// -----------------------------------------------------------------------
	env.AddFunction("sleeve_diameter", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpFloat{Val: ctx.SleeveDiameterMM}, nil
	})

	// -----------------------------------------------------------------------
	// (host-count) -> 3
	// -----------------------------------------------------------------------
	env.AddFunction("host_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(ctx.HostCount)}, nil
	})

	// -----------------------------------------------------------------------
	// (host-category) -> "Walls"   ; first intersecting host, "" when none
	// -----------------------------------------------------------------------
	env.AddFunction("host_category", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpStr{S: ctx.HostCategory}, nil
	})

	// -----------------------------------------------------------------------
	// (skip "hand-sized duct, no sleeve")
	// -----------------------------------------------------------------------
	env.AddFunction("skip", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		reason := "skipped by rule"
		if len(args) > 0 {
			s, err := toString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("skip: reason: %w", err)
			}
			reason = s
		}
		d.Skip = true
		d.Reason = reason
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (set-tolerance 0.25)   ; feet
	// -----------------------------------------------------------------------
	env.AddFunction("set_tolerance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("set-tolerance requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-tolerance: %w", err)
		}
		if f <= 0 {
			return zygo.SexpNull, fmt.Errorf("set-tolerance: tolerance must be positive, got %v", f)
		}
		d.ToleranceFt = &f
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (set-clearance 5)   ; millimeters added to the sleeve diameter
	// -----------------------------------------------------------------------
	env.AddFunction("set_clearance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("set-clearance requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-clearance: %w", err)
		}
		if f < 0 {
			return zygo.SexpNull, fmt.Errorf("set-clearance: clearance must not be negative, got %v", f)
		}
		d.ClearanceMM = &f
		return zygo.SexpNull, nil
	})
}
