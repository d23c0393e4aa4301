// Package filter compiles expr expressions into predicates over owned games,
// so a run can be narrowed ("PlaytimeMinutes > 600 and not NeverPlayed")
// before any per-game API calls are spent.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/backlogr/steam"
)

// GameFilter reports whether a game should be included in the report.
type GameFilter func(steam.OwnedGame) bool

// Compile compiles an expression into a GameFilter. The expression must
// evaluate to a boolean; games whose evaluation errors are excluded.
func Compile(expression string) (GameFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // game properties are added at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return func(game steam.OwnedGame) bool {
		return evaluate(program, game)
	}, nil
}

func evaluate(program *vm.Program, game steam.OwnedGame) bool {
	result, err := expr.Run(program, runtimeEnvironment(game))
	if err != nil {
		return false
	}
	// AsBool() at compile time guarantees the assertion holds.
	return result.(bool)
}

// helperFunctions is the static environment used for compile-time checking.
func helperFunctions() map[string]any {
	env := make(map[string]any, 16)
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// "contains" is a reserved expr operator, so the case-insensitive
	// helper needs its own name.
	env["containsStr"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
	return env
}

// runtimeEnvironment exposes one game's properties to the expression.
func runtimeEnvironment(game steam.OwnedGame) map[string]any {
	env := helperFunctions()

	env["Game"] = game
	env["Name"] = game.Name
	env["AppID"] = game.AppID
	env["PlaytimeMinutes"] = game.PlaytimeForever
	env["PlaytimeHours"] = float64(game.PlaytimeForever) / 60
	env["NeverPlayed"] = game.LastPlayed == 0
	env["LastPlayed"] = time.Unix(game.LastPlayed, 0).UTC()

	return env
}
