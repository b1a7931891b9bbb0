// internal/condition/compile.go
package condition

import (
	"errors"
	"fmt"
	"strings"
)

/*
 * Condition compilation.
 *
 * Build turns a declarative Config into an executable Condition. Per key:
 * locate the last '.' (it must exist and must not be the first or last
 * character), split into target and predicate token, and dispatch to the
 * registry. On success the predicate is recorded under a display name of the
 * form "<original key>: <argument rendering>"; that name is what failure
 * reports show.
 *
 * Compilation is total over the input: a bad key never aborts the pass, so
 * one compile surfaces every malformed rule at once. A single error is
 * returned verbatim; multiple errors are joined under a header.
 */

// Build compiles every declared rule, aggregating all failures.
func Build(cfg *Config, reg *Registry) (*Condition, error) {
	preds := make([]namedPredicate, 0, cfg.Len())
	var errs []string

	for _, entry := range cfg.Entries() {
		idx := strings.LastIndexByte(entry.Key, '.')
		if idx <= 0 || idx == len(entry.Key)-1 {
			errs = append(errs, fmt.Sprintf(
				"predicate not found in check_fields value '%s', format must be <target>.<predicate>",
				entry.Key))
			continue
		}

		target := entry.Key[:idx]
		token := entry.Key[idx+1:]

		pred, err := reg.Build(token, target, entry.Arg)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}

		preds = append(preds, namedPredicate{
			name: fmt.Sprintf("%s: %s", entry.Key, entry.Arg.DebugString()),
			pred: pred,
		})
	}

	if len(errs) == 1 {
		return nil, errors.New(errs[0])
	}
	if len(errs) > 1 {
		return nil, errors.New("failed to parse predicates:\n" + strings.Join(errs, "\n"))
	}

	return &Condition{predicates: preds}, nil
}
